// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidMagic indicates the stream does not start with the LIF marker.
	ErrInvalidMagic = errors.New("invalid LIF magic")
	// ErrInvalidDimensions indicates non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrUnknownMode indicates an encode method outside the known set.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrInvalidMipCount indicates a mip count outside [1,15].
	ErrInvalidMipCount = errors.New("invalid mip count")
	// ErrEmptyMipmaps indicates missing mipmap data.
	ErrEmptyMipmaps = errors.New("empty mipmaps")
	// ErrTooManyMipmaps indicates more levels than the header can describe.
	ErrTooManyMipmaps = errors.New("too many mipmaps")
	// ErrMipmapSizeMismatch indicates a level that is not half of the previous one.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")
	// ErrPixelDataMismatch indicates pixel buffer length does not match dimensions.
	ErrPixelDataMismatch = errors.New("pixel data length mismatch")
	// ErrPaletteOverflow indicates too many distinct colors for palette mode.
	ErrPaletteOverflow = errors.New("palette overflow")
	// ErrPaletteLookup indicates a color missing from the level palette.
	ErrPaletteLookup = errors.New("color not in palette")
	// ErrNotGrayscale indicates gray mode requested for a colored base level.
	ErrNotGrayscale = errors.New("base level is not grayscale")
	// ErrTruncated indicates the stream ended before the payload did.
	ErrTruncated = errors.New("truncated stream")
	// ErrTrailingData indicates bytes left after the last level.
	ErrTrailingData = errors.New("trailing data after last level")
	// ErrInvalidAlphaFlag indicates an alpha section flag other than 0 or 1.
	ErrInvalidAlphaFlag = errors.New("invalid alpha flag")
	// ErrInvalidGrayFlag indicates a gray level flag other than 0 or 1.
	ErrInvalidGrayFlag = errors.New("invalid grayscale flag")
	// ErrInvalidPatch indicates a palette patch count above the limit.
	ErrInvalidPatch = errors.New("invalid palette patch")
	// ErrUnknownOpcode indicates a tag byte no opcode is assigned to.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrRunOverflow indicates a run extending past the end of a surface.
	ErrRunOverflow = errors.New("run overflows surface")
	// ErrInvalidLevel indicates a requested level outside the chain.
	ErrInvalidLevel = errors.New("invalid mip level")
	// ErrEncodeLevel indicates a level failed to encode.
	ErrEncodeLevel = errors.New("encode level failed")
	// ErrDecodeLevel indicates a level failed to decode.
	ErrDecodeLevel = errors.New("decode level failed")
	// ErrGenerateMipmaps indicates mip chain generation failed.
	ErrGenerateMipmaps = errors.New("generate mipmaps failed")
	// ErrReadHeader indicates header read failed.
	ErrReadHeader = errors.New("reading LIF header failed")
	// ErrReadStream indicates reading the encoded stream failed.
	ErrReadStream = errors.New("reading LIF stream failed")
	// ErrWriteStream indicates writing the encoded stream failed.
	ErrWriteStream = errors.New("writing LIF stream failed")
	// ErrOpenFile indicates LIF file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
)
