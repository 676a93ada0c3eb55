// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

// Image is one mip level: interleaved 8-bit R,G,B,A samples, row-major,
// without padding.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a zeroed level of the given size.
func NewImage(width, height int) (*Image, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d", err, width, height)
	}
	return &Image{Width: width, Height: height, Pix: make([]byte, n*4)}, nil
}

func (m *Image) validate() error {
	n, err := pixelCount(m.Width, m.Height)
	if err != nil {
		return fmt.Errorf("%w: %dx%d", err, m.Width, m.Height)
	}
	if len(m.Pix) != n*4 {
		return fmt.Errorf("%w: %dx%d expects %d bytes, got %d", ErrPixelDataMismatch, m.Width, m.Height, n*4, len(m.Pix))
	}
	return nil
}

// FromImage copies any image into a level, converting to non-premultiplied RGBA.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// NRGBA wraps the level pixels as an image without copying.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

func init() {
	image.RegisterFormat("lif", Magic, decodeImage, decodeImageConfig)
}

// decodeImage returns the base level of a LIF stream for image.Decode.
func decodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadStream, err)
	}
	_, levels, err := DecodeLevels(data, 1)
	if err != nil {
		return nil, err
	}
	return levels[0].NRGBA(), nil
}

func decodeImageConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      h.Width,
		Height:     h.Height,
		ColorModel: color.NRGBAModel,
	}, nil
}
