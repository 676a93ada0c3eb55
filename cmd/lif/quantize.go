// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// maxQuantizeColors is the largest palette the base level can carry.
const maxQuantizeColors = 255

var errInvalidColors = errors.New("invalid color count")

func checkColors(n int) error {
	if n != 0 && (n < 2 || n > maxQuantizeColors) {
		return fmt.Errorf("%w: %d, want 2..%d", errInvalidColors, n, maxQuantizeColors)
	}
	return nil
}

// reduceColors maps img onto a median cut palette of at most n colors.
// Zero leaves img untouched.
func reduceColors(img image.Image, n int) (image.Image, error) {
	if err := checkColors(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return img, nil
	}

	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), img))
	draw.Draw(pm, b, img, b.Min, draw.Src)
	return pm, nil
}
