// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"fmt"
	"image"
	"os"
)

// WriteOptions configures LIF writing.
type WriteOptions struct {
	// MaxMipMaps limits the chain length. 0 means full chain.
	MaxMipMaps int
	// EncodeOptions are passed to the encoder (e.g. a forced Mode).
	EncodeOptions *EncodeOptions
}

// Write writes a LIF file with a full mip chain.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithMipmaps writes a LIF file with a mipmap limit.
// maxMipMaps=0 means full chain.
func WriteWithMipmaps(img image.Image, path string, maxMipMaps int) error {
	return WriteWithOptions(img, path, &WriteOptions{MaxMipMaps: maxMipMaps})
}

// WriteWithOptions writes a LIF file with the given options.
// Nil opts writes a full chain with automatic mode selection.
func WriteWithOptions(img image.Image, path string, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{}
	}

	levels, err := GenerateMipmaps(img, opts.MaxMipMaps)
	if err != nil {
		return err
	}

	return WriteFromLevels(path, levels, opts.EncodeOptions)
}

// WriteFromLevels writes a LIF file from a prepared mip chain.
// The levels slice must be ordered from largest to smallest.
func WriteFromLevels(path string, levels []*Image, opts *EncodeOptions) error {
	data, err := EncodeWithOptions(levels, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteStream, path, err)
	}

	return f.Close()
}
