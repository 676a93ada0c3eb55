// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

const (
	grayLost = 0
	grayKept = 1
)

func isGray(img *Image) bool {
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		if !pixelRGB(img.Pix, i).gray() {
			return false
		}
	}
	return true
}

// grayCodec stores one intensity delta per pixel. Levels after the base that
// are no longer grayscale go through the shared color codec.
type grayCodec struct {
	fallback *colorCodec
}

func (gc *grayCodec) encodeBase(w *writer, img *Image) error {
	if !isGray(img) {
		return ErrNotGrayscale
	}
	writeGray(w, img)
	return nil
}

func (gc *grayCodec) encodeLevel(w *writer, img *Image, level int) {
	if !isGray(img) {
		logger().Debug("level lost grayscale, using color codec", "level", level)
		w.byte(grayLost)
		gc.fallback.encode(w, img)
		return
	}
	w.byte(grayKept)
	writeGray(w, img)
}

func (gc *grayCodec) decodeLevel(r *reader, img *Image) error {
	flag, err := r.byte()
	if err != nil {
		return err
	}
	switch flag {
	case grayKept:
		return readGray(r, img)
	case grayLost:
		return gc.fallback.decode(r, img)
	default:
		return ErrInvalidGrayFlag
	}
}

func writeGray(w *writer, img *Image) {
	writeAlpha(w, img)

	var prev uint8
	n := img.Width * img.Height
	for i := 0; i < n; i++ {
		v := img.Pix[i*4]
		w.byte(v - prev)
		prev = v
	}
}

func readGray(r *reader, img *Image) error {
	if err := readAlpha(r, img); err != nil {
		return err
	}

	deltas, err := r.bytes(img.Width * img.Height)
	if err != nil {
		return err
	}
	var v uint8
	for i, d := range deltas {
		v += d
		o := i * 4
		img.Pix[o], img.Pix[o+1], img.Pix[o+2] = v, v, v
	}
	return nil
}
