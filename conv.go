// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

const (
	maxInt32 = int(^uint32(0) >> 1)

	// maxPixels bounds width*height so the RGBA buffer length fits an int32.
	maxPixels = maxInt32 / 4
)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// pixelCount returns width*height, failing when the RGBA buffer would not fit.
func pixelCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrInvalidDimensions
	}
	if width > maxPixels/height {
		return 0, ErrSizeOverflow
	}

	return width * height, nil
}
