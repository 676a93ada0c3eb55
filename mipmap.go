// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
)

// calculateMipMapCount calculates the number of mipmap levels for a given width and height.
func calculateMipMapCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		count++
		width = max(1, width/2)
		height = max(1, height/2)
	}

	return min(count, MaxMipCount)
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// validateChain checks that every level halves the previous one.
func validateChain(levels []*Image) error {
	if len(levels) == 0 {
		return ErrEmptyMipmaps
	}
	if len(levels) > MaxMipCount {
		return fmt.Errorf("%w: %d levels, max %d", ErrTooManyMipmaps, len(levels), MaxMipCount)
	}

	base := levels[0]
	for i, img := range levels {
		if img == nil {
			return fmt.Errorf("%w: level %d is nil", ErrMipmapSizeMismatch, i)
		}
		if err := img.validate(); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		w, h := mipDimension(base.Width, i), mipDimension(base.Height, i)
		if img.Width != w || img.Height != h {
			return fmt.Errorf("%w: level %d: expected %dx%d, got %dx%d",
				ErrMipmapSizeMismatch, i, w, h, img.Width, img.Height)
		}
	}

	return nil
}

// GenerateMipmaps builds a mip chain from img. maxLevels=0 means full chain,
// capped at MaxMipCount.
func GenerateMipmaps(img image.Image, maxLevels int) ([]*Image, error) {
	b := img.Bounds()
	count := calculateMipMapCount(b.Dx(), b.Dy())
	if maxLevels > 0 && maxLevels < count {
		count = maxLevels
	}

	mips := bcn.GenerateMipmaps(img, false)
	if len(mips) > count {
		mips = mips[:count]
	}

	levels := make([]*Image, len(mips))
	for i, mip := range mips {
		mb := mip.Bounds()
		data, _, _, err := bcn.EncodeImageWithOptions(mip, bcn.FormatRGBA8, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %v", ErrGenerateMipmaps, i, err)
		}
		levels[i] = &Image{Width: mb.Dx(), Height: mb.Dy(), Pix: data}
	}

	if err := validateChain(levels); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateMipmaps, err)
	}

	return levels, nil
}

// EncodeImage generates the mip chain of img and encodes it.
// maxLevels=0 means full chain.
func EncodeImage(img image.Image, maxLevels int, opts *EncodeOptions) ([]byte, error) {
	levels, err := GenerateMipmaps(img, maxLevels)
	if err != nil {
		return nil, err
	}
	return EncodeWithOptions(levels, opts)
}
