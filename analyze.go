// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import "fmt"

// Mode is the encode method stored in the high nibble of the mode byte.
type Mode uint8

const (
	// ModeColor uses the generic color codec with the 2-bit delta opcode.
	ModeColor Mode = 0
	// ModeColorIdx2 uses the generic color codec with a 192-entry cache.
	ModeColorIdx2 Mode = 1
	// ModePalette stores indices into a sorted palette built from level 0.
	ModePalette Mode = 2
	// ModeGray stores one intensity delta per pixel.
	ModeGray Mode = 3

	// ModeAuto lets Analyze pick the mode. It never appears in a stream.
	ModeAuto Mode = 0xff
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeColor:
		return "Color"
	case ModeColorIdx2:
		return "ColorIdx2"
	case ModePalette:
		return "Palette"
	case ModeGray:
		return "Gray"
	case ModeAuto:
		return "Auto"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func (m Mode) valid() bool {
	return m <= ModeGray
}

const (
	// analyzer palette tracking stops when this many colors would be held
	analyzePaletteCap = 256

	grayMinColors    = 4
	paletteMinColors = 8
	paletteMinSize   = 32
	colorMinDeltas   = 2
)

// imageStats is the result of one scan over a base level.
type imageStats struct {
	gray     bool
	overflow bool
	colors   int
	cD1      int
}

func scanImage(img *Image) imageStats {
	st := imageStats{gray: true}
	seen := make(map[rgb]struct{}, 64)
	cache := newRollingCache(cacheSizeColor)
	prev := black

	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		c := pixelRGB(img.Pix, i)
		if st.gray && !c.gray() {
			st.gray = false
		}

		if !st.overflow {
			if _, ok := seen[c]; !ok {
				if len(seen)+1 >= analyzePaletteCap {
					st.overflow = true
					seen = nil
				} else {
					seen[c] = struct{}{}
				}
			}
		}

		if cache.lookup(c) < 0 {
			cache.push(c)
			if smallDelta(c.delta(prev)) {
				st.cD1++
			}
		}
		prev = c
	}

	st.colors = len(seen)
	return st
}

// Analyze selects the encode method for a mip chain from its base level.
// The result depends only on pixel content.
func Analyze(img *Image) Mode {
	return scanImage(img).mode(img.Width, img.Height)
}

func (st imageStats) mode(width, height int) Mode {
	switch {
	case st.gray && (st.overflow || st.colors > grayMinColors):
		return ModeGray
	case !st.gray && !st.overflow && st.colors > paletteMinColors &&
		width >= paletteMinSize && height >= paletteMinSize:
		return ModePalette
	case st.cD1 >= colorMinDeltas:
		return ModeColor
	default:
		return ModeColorIdx2
	}
}
