// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"fmt"
	"math/bits"
	"slices"
)

const (
	paletteSlots     = 256
	paletteMaxColors = 255 // count is stored in one byte
	patchMaxColors   = 48

	patchFallback = 0xff
	indexEscape   = 0xff

	// longest streak of repeats one run marker can carry; the length byte
	// must never equal indexEscape
	indexMaxRepeats = 254
)

// slotSet marks palette slots referenced by the current level.
type slotSet [paletteSlots / 64]uint64

func (s *slotSet) set(i int) {
	s[i>>6] |= 1 << (i & 63)
}

// firstClear returns the lowest unused slot, or -1 when all are taken.
func (s *slotSet) firstClear() int {
	for w, word := range s {
		if word != ^uint64(0) {
			return w*64 + bits.TrailingZeros64(^word)
		}
	}
	return -1
}

// highest returns the highest used slot, or -1.
func (s *slotSet) highest() int {
	for w := len(s) - 1; w >= 0; w-- {
		if s[w] != 0 {
			return w*64 + 63 - bits.LeadingZeros64(s[w])
		}
	}
	return -1
}

type patch struct {
	slot  uint8
	color rgb
}

// paletteCodec encodes level 0 against a sorted palette and every further
// level against that palette plus a small patch list. Levels that need too
// many new colors go through the shared color codec.
type paletteCodec struct {
	colors [paletteSlots]rgb
	count  int
	index  map[rgb]uint8

	fallback *colorCodec
}

func newPaletteCodec(fallback *colorCodec) *paletteCodec {
	return &paletteCodec{fallback: fallback}
}

// distinctColors lists the colors of img in first-occurrence order.
func distinctColors(img *Image, limit int) ([]rgb, bool) {
	seen := make(map[rgb]struct{}, 64)
	var out []rgb
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		c := pixelRGB(img.Pix, i)
		if _, ok := seen[c]; ok {
			continue
		}
		if len(out) == limit {
			return out, false
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, true
}

func (pc *paletteCodec) build(img *Image) error {
	colors, ok := distinctColors(img, paletteMaxColors)
	if !ok {
		return fmt.Errorf("%w: more than %d colors", ErrPaletteOverflow, paletteMaxColors)
	}
	slices.SortFunc(colors, func(a, b rgb) int {
		return int(a.key()) - int(b.key())
	})

	pc.setMain(colors)
	return nil
}

func (pc *paletteCodec) setMain(colors []rgb) {
	pc.count = copy(pc.colors[:], colors)
	pc.index = make(map[rgb]uint8, pc.count)
	for i, c := range pc.colors[:pc.count] {
		pc.index[c] = uint8(i)
	}
}

func (pc *paletteCodec) writeTable(w *writer) {
	w.byte(byte(pc.count))
	prev := black
	for _, c := range pc.colors[:pc.count] {
		w.write(c.R-prev.R, c.G-prev.G, c.B-prev.B)
		prev = c
	}
}

func (pc *paletteCodec) readTable(r *reader) error {
	count, err := r.byte()
	if err != nil {
		return err
	}
	p, err := r.bytes(int(count) * 3)
	if err != nil {
		return err
	}

	colors := make([]rgb, count)
	prev := black
	for i := range colors {
		prev = rgb{prev.R + p[i*3], prev.G + p[i*3+1], prev.B + p[i*3+2]}
		colors[i] = prev
	}
	pc.setMain(colors)
	return nil
}

func (pc *paletteCodec) encodeBase(w *writer, img *Image) error {
	if err := pc.build(img); err != nil {
		return err
	}
	pc.writeTable(w)
	writeAlpha(w, img)
	return writeIndexed(w, img, pc.index)
}

func (pc *paletteCodec) decodeBase(r *reader, img *Image) error {
	if err := pc.readTable(r); err != nil {
		return err
	}
	if err := readAlpha(r, img); err != nil {
		return err
	}
	return readIndexed(r, img, &pc.colors)
}

// plan computes the patch list for a level. ok is false when the level needs
// more new colors than a patch list can carry.
func (pc *paletteCodec) plan(img *Image) (patches []patch, lut map[rgb]uint8, used int, ok bool) {
	colors, _ := distinctColors(img, -1)

	var slots slotSet
	lut = make(map[rgb]uint8, len(colors))
	var fresh []rgb
	for _, c := range colors {
		if i, found := pc.index[c]; found {
			slots.set(int(i))
			lut[c] = i
		} else {
			fresh = append(fresh, c)
		}
	}
	used = slots.highest() + 1

	if len(fresh) > patchMaxColors {
		return nil, nil, used, false
	}
	for _, c := range fresh {
		slot := slots.firstClear()
		if slot < 0 {
			return nil, nil, used, false
		}
		slots.set(slot)
		patches = append(patches, patch{slot: uint8(slot), color: c})
		lut[c] = uint8(slot)
	}
	return patches, lut, used, true
}

func (pc *paletteCodec) encodeLevel(w *writer, img *Image, level int) error {
	patches, lut, used, ok := pc.plan(img)
	if !ok {
		logger().Debug("palette patch overflow, using color codec", "level", level, "used", used)
		w.byte(patchFallback)
		pc.fallback.encode(w, img)
		return nil
	}

	logger().Debug("palette patched", "level", level, "patches", len(patches), "used", used)
	w.byte(byte(len(patches)))
	for _, p := range patches {
		w.write(p.slot, p.color.R, p.color.G, p.color.B)
	}
	writeAlpha(w, img)
	return writeIndexed(w, img, lut)
}

func (pc *paletteCodec) decodeLevel(r *reader, img *Image) error {
	count, err := r.byte()
	if err != nil {
		return err
	}
	if count == patchFallback {
		return pc.fallback.decode(r, img)
	}
	if count > patchMaxColors {
		return fmt.Errorf("%w: %d patches", ErrInvalidPatch, count)
	}

	p, err := r.bytes(int(count) * 4)
	if err != nil {
		return err
	}
	colors := pc.colors
	for i := 0; i < int(count); i++ {
		e := p[i*4 : i*4+4]
		colors[e[0]] = rgb{e[1], e[2], e[3]}
	}

	if err := readAlpha(r, img); err != nil {
		return err
	}
	return readIndexed(r, img, &colors)
}

// writeIndexed stores a surface as palette indices with repeat markers.
func writeIndexed(w *writer, img *Image, lut map[rgb]uint8) error {
	var (
		prev    rgb
		idx     uint8
		repeats int
	)

	putIndex := func(i uint8) {
		w.byte(i)
		if i == indexEscape {
			w.byte(indexEscape)
		}
	}
	flush := func() {
		switch {
		case repeats == 1:
			putIndex(idx)
		case repeats > 1:
			w.write(indexEscape, byte(repeats-1))
		}
		repeats = 0
	}

	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		c := pixelRGB(img.Pix, i)
		if i > 0 && c == prev {
			repeats++
			if repeats == indexMaxRepeats {
				flush()
			}
			continue
		}
		flush()

		var ok bool
		if idx, ok = lut[c]; !ok {
			return fmt.Errorf("%w: (%d,%d,%d) at pixel %d", ErrPaletteLookup, c.R, c.G, c.B, i)
		}
		putIndex(idx)
		prev = c
	}
	flush()
	return nil
}

func readIndexed(r *reader, img *Image, colors *[paletteSlots]rgb) error {
	prev := black
	n := img.Width * img.Height
	for i := 0; i < n; {
		b, err := r.byte()
		if err != nil {
			return err
		}
		if b == indexEscape {
			x, err := r.byte()
			if err != nil {
				return err
			}
			if x != indexEscape {
				if i, err = fillRun(img, i, int(x)+1, prev); err != nil {
					return err
				}
				continue
			}
		}

		prev = colors[b]
		setRGB(img.Pix, i, prev)
		i++
	}
	return nil
}
