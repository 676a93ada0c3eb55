// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"fmt"
	"image"
	"image/color"
	"os"
)

// ReadConfig reads LIF file configuration without decoding image data.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, err := ReadHeader(f)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      header.Width,
		Height:     header.Height,
		ColorModel: color.NRGBAModel,
	}, nil
}

// Read reads a LIF file and returns its largest level.
func Read(path string) (image.Image, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	_, levels, err := DecodeLevels(data, 1)
	if err != nil {
		return nil, err
	}

	return levels[0].NRGBA(), nil
}

// ReadLevels reads a LIF file and decodes its whole mip chain.
func ReadLevels(path string) (Header, []*Image, error) {
	data, err := readFile(path)
	if err != nil {
		return Header{}, nil, err
	}

	return decode(data, MaxMipCount)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	return data, nil
}
