// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

const (
	alphaOpaque = 0
	alphaDelta  = 1
)

// writeAlpha stores the alpha channel of a surface: a single flag byte when
// fully opaque, otherwise the flag followed by wrapping per-pixel deltas.
func writeAlpha(w *writer, img *Image) {
	n := img.Width * img.Height
	opaque := true
	for i := 0; i < n; i++ {
		if img.Pix[i*4+3] != 0xff {
			opaque = false
			break
		}
	}
	if opaque {
		w.byte(alphaOpaque)
		return
	}

	w.byte(alphaDelta)
	var prev uint8
	for i := 0; i < n; i++ {
		a := img.Pix[i*4+3]
		w.byte(a - prev)
		prev = a
	}
}

// readAlpha restores the alpha channel written by writeAlpha.
func readAlpha(r *reader, img *Image) error {
	flag, err := r.byte()
	if err != nil {
		return err
	}

	n := img.Width * img.Height
	switch flag {
	case alphaOpaque:
		for i := 0; i < n; i++ {
			img.Pix[i*4+3] = 0xff
		}
		return nil
	case alphaDelta:
		deltas, err := r.bytes(n)
		if err != nil {
			return err
		}
		var a uint8
		for i, d := range deltas {
			a += d
			img.Pix[i*4+3] = a
		}
		return nil
	default:
		return ErrInvalidAlphaFlag
	}
}
