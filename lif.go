// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import (
	"bytes"
	"fmt"
	"io"
)

const (
	// Magic is the 4-byte marker every LIF stream starts with.
	Magic = "LIF\x00"
	// HeaderSize is the size of the fixed stream header.
	HeaderSize = 13
	// MaxMipCount is the largest chain the mode byte can describe.
	MaxMipCount = 15
)

// Header describes a LIF stream.
type Header struct {
	Width    int
	Height   int
	Mode     Mode
	MipCount int
}

// LevelSize returns the dimensions of the given mip level.
func (h Header) LevelSize(level int) (int, int) {
	return mipDimension(h.Width, level), mipDimension(h.Height, level)
}

func (h Header) write(w *writer) error {
	width, err := i32FromInt(h.Width)
	if err != nil {
		return err
	}
	height, err := i32FromInt(h.Height)
	if err != nil {
		return err
	}

	w.write([]byte(Magic)...)
	w.int32(width)
	w.int32(height)
	w.byte(byte(h.Mode)<<4 | byte(h.MipCount))
	return nil
}

func parseHeader(r *reader) (Header, error) {
	m, err := r.bytes(len(Magic))
	if err != nil {
		return Header{}, err
	}
	if string(m) != Magic {
		return Header{}, fmt.Errorf("%w: % x", ErrInvalidMagic, m)
	}

	width, err := r.int32()
	if err != nil {
		return Header{}, err
	}
	height, err := r.int32()
	if err != nil {
		return Header{}, err
	}
	mb, err := r.byte()
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Width:    int(width),
		Height:   int(height),
		Mode:     Mode(mb >> 4),
		MipCount: int(mb & 0x0f),
	}
	if _, err := pixelCount(h.Width, h.Height); err != nil {
		return Header{}, fmt.Errorf("%w: %dx%d", err, h.Width, h.Height)
	}
	if !h.Mode.valid() {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownMode, mb>>4)
	}
	if h.MipCount < 1 {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidMipCount, h.MipCount)
	}

	return h, nil
}

// ReadHeader reads and validates the stream header without decoding levels.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, fmt.Errorf("%w: %v", ErrReadHeader, err)
	}
	return parseHeader(&reader{data: buf[:]})
}

// EncodeOptions configures encoding.
type EncodeOptions struct {
	// Mode forces an encode method. ModeAuto (the default for nil options)
	// runs Analyze on the base level.
	Mode Mode
}

// streamCodec routes levels to the codec of the stream mode. The color codec
// is shared so Gray and Palette fallbacks see the same cache.
type streamCodec struct {
	mode    Mode
	colors  *colorCodec
	palette *paletteCodec
	gray    *grayCodec
}

func newStreamCodec(mode Mode) *streamCodec {
	s := &streamCodec{mode: mode, colors: newColorCodec(mode)}
	switch mode {
	case ModePalette:
		s.palette = newPaletteCodec(s.colors)
	case ModeGray:
		s.gray = &grayCodec{fallback: s.colors}
	}
	return s
}

func (s *streamCodec) encodeLevel(w *writer, img *Image, level int) error {
	switch s.mode {
	case ModePalette:
		if level == 0 {
			return s.palette.encodeBase(w, img)
		}
		return s.palette.encodeLevel(w, img, level)
	case ModeGray:
		if level == 0 {
			return s.gray.encodeBase(w, img)
		}
		s.gray.encodeLevel(w, img, level)
		return nil
	default:
		s.colors.encode(w, img)
		return nil
	}
}

func (s *streamCodec) decodeLevel(r *reader, img *Image, level int) error {
	switch s.mode {
	case ModePalette:
		if level == 0 {
			return s.palette.decodeBase(r, img)
		}
		return s.palette.decodeLevel(r, img)
	case ModeGray:
		if level == 0 {
			return readGray(r, img)
		}
		return s.gray.decodeLevel(r, img)
	default:
		return s.colors.decode(r, img)
	}
}

// Encode encodes a mip chain, choosing the mode from the base level.
func Encode(levels []*Image) ([]byte, error) {
	return EncodeWithOptions(levels, nil)
}

// EncodeWithOptions encodes a mip chain with the given options.
// Nil opts selects the mode automatically.
func EncodeWithOptions(levels []*Image, opts *EncodeOptions) ([]byte, error) {
	if err := validateChain(levels); err != nil {
		return nil, err
	}

	mode := ModeAuto
	if opts != nil {
		mode = opts.Mode
	}
	if mode == ModeAuto {
		mode = Analyze(levels[0])
	} else if !mode.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(mode))
	}

	base := levels[0]
	logger().Debug("encoding LIF", "width", base.Width, "height", base.Height, "levels", len(levels), "mode", mode)

	w := &writer{buf: make([]byte, 0, HeaderSize+len(base.Pix)/2)}
	hdr := Header{Width: base.Width, Height: base.Height, Mode: mode, MipCount: len(levels)}
	if err := hdr.write(w); err != nil {
		return nil, err
	}

	s := newStreamCodec(mode)
	for i, img := range levels {
		if err := s.encodeLevel(w, img, i); err != nil {
			return nil, fmt.Errorf("%w: level %d: %w", ErrEncodeLevel, i, err)
		}
	}

	return w.buf, nil
}

// EncodeTo encodes a mip chain and writes it to w.
func EncodeTo(w io.Writer, levels []*Image, opts *EncodeOptions) error {
	data, err := EncodeWithOptions(levels, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteStream, err)
	}
	return nil
}

// Decode decodes every level of a LIF stream.
func Decode(data []byte) ([]*Image, error) {
	_, levels, err := decode(data, MaxMipCount)
	return levels, err
}

// DecodeFrom reads a whole LIF stream from r and decodes it.
func DecodeFrom(r io.Reader) ([]*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadStream, err)
	}
	return Decode(data)
}

// DecodeLevels decodes the first n levels only. Levels depend on codec
// state built by the ones before them, so they cannot be skipped.
func DecodeLevels(data []byte, n int) (Header, []*Image, error) {
	if n < 1 {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return decode(data, n)
}

func decode(data []byte, limit int) (Header, []*Image, error) {
	r := &reader{data: data}
	hdr, err := parseHeader(r)
	if err != nil {
		return Header{}, nil, err
	}

	count := min(hdr.MipCount, limit)
	s := newStreamCodec(hdr.Mode)
	levels := make([]*Image, count)
	for i := range levels {
		w, h := hdr.LevelSize(i)
		img, err := NewImage(w, h)
		if err != nil {
			return Header{}, nil, err
		}
		if err := s.decodeLevel(r, img, i); err != nil {
			return Header{}, nil, fmt.Errorf("%w: level %d: %w", ErrDecodeLevel, i, err)
		}
		levels[i] = img
	}

	if count == hdr.MipCount && r.remaining() != 0 {
		return Header{}, nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.remaining())
	}

	return hdr, levels, nil
}

// IsLIF reports whether data starts with the LIF marker.
func IsLIF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}
