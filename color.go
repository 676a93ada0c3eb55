// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

// rgb is the unit of every palette and cache comparison.
type rgb struct {
	R, G, B uint8
}

var (
	black = rgb{0, 0, 0}
	white = rgb{255, 255, 255}
)

// pixelRGB returns the color of pixel i in an RGBA buffer.
func pixelRGB(pix []byte, i int) rgb {
	o := i * 4
	return rgb{pix[o], pix[o+1], pix[o+2]}
}

// setRGB stores c into pixel i, leaving alpha untouched.
func setRGB(pix []byte, i int, c rgb) {
	o := i * 4
	pix[o] = c.R
	pix[o+1] = c.G
	pix[o+2] = c.B
}

// key orders colors as a 24-bit big-endian integer.
func (c rgb) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c rgb) gray() bool {
	return c.R == c.G && c.G == c.B
}

// delta returns the signed per-channel difference c - prev.
func (c rgb) delta(prev rgb) (dr, dg, db int) {
	return int(c.R) - int(prev.R), int(c.G) - int(prev.G), int(c.B) - int(prev.B)
}

// add applies a signed per-channel difference with 8-bit wraparound.
func (c rgb) add(dr, dg, db int) rgb {
	return rgb{uint8(int(c.R) + dr), uint8(int(c.G) + dg), uint8(int(c.B) + db)}
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// smallDelta reports whether every channel difference fits the 2-bit opcode.
func smallDelta(dr, dg, db int) bool {
	return inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1)
}
