// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import "fmt"

// Opcode tags of the generic color stream.
const (
	opIndexMask  = 0x80 // 0xxxxxxx
	opDelta2     = 0x80 // 10rrggbb, or high cache index without the 2-bit delta
	opDelta2Mask = 0xc0
	opDelta4     = 0xc0 // 1100rrrr ggggbbbb
	opDeltaWide  = 0xd0 // 1101vvvv vvvvvvvv vvvvvvvv
	opDeltaMask  = 0xf0
	opLiteral    = 0xe0 // 11100000 r g b
	opRunLong    = 0xe8 // 11101vvv vvvvvvvv
	opRunLongMsk = 0xf8
	opRunShort   = 0xf0 // 1111vvvv

	runShortMin = 2
	runShortMax = 17
	runLongMin  = 18
	runMax      = runLongMin + 0x7ff
)

// colorCodec is the opcode-based delta/cache codec. One instance serves every
// level of a stream, including Gray and Palette fallbacks, so the cache and
// its cursor carry over from level to level.
type colorCodec struct {
	cache    *rollingCache
	enableD1 bool
}

func newColorCodec(mode Mode) *colorCodec {
	if mode == ModeColorIdx2 {
		return &colorCodec{cache: newRollingCache(cacheSizeColorIdx2)}
	}
	return &colorCodec{cache: newRollingCache(cacheSizeColor), enableD1: true}
}

// colorEncoder holds the per-surface encode state.
type colorEncoder struct {
	*colorCodec
	w *writer

	prev    rgb
	slot    int
	repeats int
}

func (cc *colorCodec) encode(w *writer, img *Image) {
	writeAlpha(w, img)

	e := colorEncoder{colorCodec: cc, w: w, prev: black, slot: -1}
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		c := pixelRGB(img.Pix, i)
		if e.slot >= 0 && c == e.prev {
			e.repeats++
			if e.repeats == runMax {
				e.flushRun()
			}
			continue
		}
		e.flushRun()

		slot := cc.cache.lookup(c)
		if slot >= 0 {
			e.writeIndex(slot)
		} else {
			e.writeMiss(c)
			slot = cc.cache.push(c)
		}
		e.prev = c
		e.slot = slot
	}
	e.flushRun()
}

func (e *colorEncoder) writeIndex(slot int) {
	if slot < 0x80 {
		e.w.byte(byte(slot))
		return
	}
	// only reachable with the 192-entry cache, where 10xxxxxx is free
	e.w.byte(opDelta2 | byte(slot-0x80))
}

func (e *colorEncoder) writeMiss(c rgb) {
	dr, dg, db := c.delta(e.prev)
	switch {
	case e.enableD1 && smallDelta(dr, dg, db):
		e.w.byte(opDelta2 | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2))
	case inRange(dr, -8, 7) && inRange(dg, -8, 7) && inRange(db, -8, 7):
		e.w.write(opDelta4|byte(dr+8), byte(dg+8)<<4|byte(db+8))
	case inRange(dr, -64, 63) && inRange(dg, -64, 63) && inRange(db, -32, 31):
		v := uint32(dr+64)<<13 | uint32(dg+64)<<6 | uint32(db+32)
		e.w.write(opDeltaWide|byte(v>>16), byte(v>>8), byte(v))
	default:
		e.w.write(opLiteral, c.R, c.G, c.B)
	}
}

// flushRun emits the pending repeats of the current pixel.
func (e *colorEncoder) flushRun() {
	n := e.repeats
	e.repeats = 0
	switch {
	case n == 0:
	case n == 1:
		e.writeIndex(e.slot)
	case n <= runShortMax:
		e.w.byte(opRunShort | byte(n-runShortMin))
	default:
		v := n - runLongMin
		e.w.write(opRunLong|byte(v>>8), byte(v))
	}
}

func (cc *colorCodec) decode(r *reader, img *Image) error {
	if err := readAlpha(r, img); err != nil {
		return err
	}

	prev := black
	n := img.Width * img.Height
	for i := 0; i < n; {
		b, err := r.byte()
		if err != nil {
			return err
		}

		var c rgb
		switch {
		case b&opIndexMask == 0:
			c = cc.cache.slots[b]

		case b&opDelta2Mask == opDelta2:
			if cc.enableD1 {
				c = prev.add(int(b>>4&3)-2, int(b>>2&3)-2, int(b&3)-2)
				cc.cache.push(c)
			} else {
				c = cc.cache.slots[0x80+int(b&0x3f)]
			}

		case b&opDeltaMask == opDelta4:
			x, err := r.byte()
			if err != nil {
				return err
			}
			c = prev.add(int(b&0x0f)-8, int(x>>4)-8, int(x&0x0f)-8)
			cc.cache.push(c)

		case b&opDeltaMask == opDeltaWide:
			p, err := r.bytes(2)
			if err != nil {
				return err
			}
			v := uint32(b&0x0f)<<16 | uint32(p[0])<<8 | uint32(p[1])
			c = prev.add(int(v>>13&0x7f)-64, int(v>>6&0x7f)-64, int(v&0x3f)-32)
			cc.cache.push(c)

		case b == opLiteral:
			p, err := r.bytes(3)
			if err != nil {
				return err
			}
			c = rgb{p[0], p[1], p[2]}
			cc.cache.push(c)

		case b&opRunLongMsk == opRunLong:
			x, err := r.byte()
			if err != nil {
				return err
			}
			run := (int(b&0x07)<<8 | int(x)) + runLongMin
			if i, err = fillRun(img, i, run, prev); err != nil {
				return err
			}
			continue

		case b&opDeltaMask == opRunShort:
			run := int(b&0x0f) + runShortMin
			if i, err = fillRun(img, i, run, prev); err != nil {
				return err
			}
			continue

		default:
			return fmt.Errorf("%w: 0x%02x at pixel %d", ErrUnknownOpcode, b, i)
		}

		setRGB(img.Pix, i, c)
		prev = c
		i++
	}

	return nil
}

// fillRun writes run copies of c starting at pixel i and returns the next pixel.
func fillRun(img *Image, i, run int, c rgb) (int, error) {
	n := img.Width * img.Height
	if run > n-i {
		return i, fmt.Errorf("%w: run of %d at pixel %d of %d", ErrRunOverflow, run, i, n)
	}
	for end := i + run; i < end; i++ {
		setRGB(img.Pix, i, c)
	}
	return i, nil
}
