// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

/*
Package lif implements the LIF lossless image format: a base image and its
mipmap chain stored in one compact stream.

A stream is a 13-byte header ("LIF\0", width, height, mode and mip count)
followed by one payload per level, largest first. Every payload starts with
the alpha channel (a single flag byte when fully opaque) and continues with
the color data of one of four methods chosen by Analyze from the base level:

  - Color and ColorIdx2 use an opcode stream of cache references, small
    deltas, literals and runs backed by a rolling color cache.
  - Palette stores indices into a sorted palette built from level 0; later
    levels patch up to 48 slots of it.
  - Gray stores a single intensity delta per pixel.

Gray and Palette levels that do not fit their method fall back to the color
opcode stream. The rolling cache is shared by all levels, so levels must be
decoded in order.

Decoded images are registered with the standard image package, so
image.Decode returns the base level of a LIF stream.
*/
package lif
