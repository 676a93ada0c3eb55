// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

const (
	cacheSizeColor     = 128
	cacheSizeColorIdx2 = 192
	maxCacheSize       = cacheSizeColorIdx2
)

// rollingCache is a fixed table of recently seen colors. Slot 0 always holds
// black; the cursor wraps to slot 1 so it is never overwritten.
type rollingCache struct {
	slots  [maxCacheSize]rgb
	size   int
	cursor int
}

func newRollingCache(size int) *rollingCache {
	c := &rollingCache{size: size, cursor: 2}
	c.slots[0] = black
	c.slots[1] = white
	return c
}

// lookup returns the first slot holding col, or -1.
func (c *rollingCache) lookup(col rgb) int {
	for i := 0; i < c.size; i++ {
		if c.slots[i] == col {
			return i
		}
	}
	return -1
}

// push stores col at the cursor and returns the slot it landed in.
func (c *rollingCache) push(col rgb) int {
	slot := c.cursor
	c.slots[slot] = col
	c.cursor++
	if c.cursor == c.size {
		c.cursor = 1
	}
	return slot
}
