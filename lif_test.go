package lif

import (
	"bytes"
	"errors"
	"image"
	"testing"
)

func TestRoundTripModes(t *testing.T) {
	t.Parallel()

	gray := newTestImage(t, 33, 17, func(x, y int) (uint8, uint8, uint8, uint8) {
		v := uint8(x*x + y*3)
		return v, v, v, 255
	})
	paletted := newTestImage(t, 40, 40, func(x, y int) (uint8, uint8, uint8, uint8) {
		c := mainColor((x/3 + y/2) % 12)
		return c.R, c.G, c.B, 255
	})
	photo := newTestImage(t, 37, 29, noisy)
	smallPalette := newTestImage(t, 16, 8, func(x, y int) (uint8, uint8, uint8, uint8) {
		c := mainColor((x + y) % 12)
		return c.R, c.G, c.B, uint8(200 + x)
	})

	tests := []struct {
		name string
		base *Image
		mode Mode
	}{
		{name: "auto-gray", base: gray, mode: ModeAuto},
		{name: "auto-palette", base: paletted, mode: ModeAuto},
		{name: "auto-photo", base: photo, mode: ModeAuto},
		{name: "color-photo", base: photo, mode: ModeColor},
		{name: "idx2-photo", base: photo, mode: ModeColorIdx2},
		{name: "color-gray", base: gray, mode: ModeColor},
		{name: "idx2-palette", base: paletted, mode: ModeColorIdx2},
		{name: "palette-small", base: smallPalette, mode: ModePalette},
		{name: "gray-gray", base: gray, mode: ModeGray},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			levels := testChain(tc.base, calculateMipMapCount(tc.base.Width, tc.base.Height))
			data := assertRoundTrip(t, levels, &EncodeOptions{Mode: tc.mode})

			hdr, err := ReadHeader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("ReadHeader: %v", err)
			}
			want := tc.mode
			if want == ModeAuto {
				want = Analyze(tc.base)
			}
			if hdr.Mode != want || hdr.MipCount != len(levels) {
				t.Fatalf("header = %+v, want mode %v with %d levels", hdr, want, len(levels))
			}
		})
	}
}

func TestEncodeValidation(t *testing.T) {
	t.Parallel()

	color4 := newTestImage(t, 4, 4, noisy)
	many := newTestImage(t, 32, 32, func(x, y int) (uint8, uint8, uint8, uint8) {
		return uint8(x * 8), uint8(y * 8), 0, 255
	})

	tests := []struct {
		name    string
		levels  []*Image
		mode    Mode
		wantErr []error
	}{
		{name: "empty", levels: nil, mode: ModeAuto, wantErr: []error{ErrEmptyMipmaps}},
		{name: "nil-level", levels: []*Image{color4, nil}, mode: ModeAuto, wantErr: []error{ErrMipmapSizeMismatch}},
		{name: "size-mismatch", levels: []*Image{color4, newTestImage(t, 3, 2, noisy)}, mode: ModeAuto, wantErr: []error{ErrMipmapSizeMismatch}},
		{name: "pix-length", levels: []*Image{{Width: 2, Height: 2, Pix: make([]byte, 15)}}, mode: ModeAuto, wantErr: []error{ErrPixelDataMismatch}},
		{name: "zero-width", levels: []*Image{{Width: 0, Height: 2}}, mode: ModeAuto, wantErr: []error{ErrInvalidDimensions}},
		{name: "too-many-levels", levels: make([]*Image, MaxMipCount+1), mode: ModeAuto, wantErr: []error{ErrTooManyMipmaps}},
		{name: "unknown-mode", levels: []*Image{color4}, mode: Mode(7), wantErr: []error{ErrUnknownMode}},
		{name: "palette-overflow", levels: []*Image{many}, mode: ModePalette, wantErr: []error{ErrEncodeLevel, ErrPaletteOverflow}},
		{name: "gray-colored-base", levels: []*Image{color4}, mode: ModeGray, wantErr: []error{ErrEncodeLevel, ErrNotGrayscale}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data, err := EncodeWithOptions(tc.levels, &EncodeOptions{Mode: tc.mode})
			if data != nil {
				t.Fatalf("expected no output on error, got %d bytes", len(data))
			}
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected error %v, got %v", want, err)
				}
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	header := func(w, h byte, modeByte byte) []byte {
		return []byte{'L', 'I', 'F', 0, w, 0, 0, 0, h, 0, 0, 0, modeByte}
	}
	join := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	red := newTestImage(t, 4, 4, func(_, _ int) (uint8, uint8, uint8, uint8) {
		return 255, 0, 0, 255
	})
	valid, err := Encode([]*Image{red})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr []error
	}{
		{name: "empty", data: nil, wantErr: []error{ErrTruncated}},
		{name: "bad-magic", data: join([]byte("LIX\x00"), valid[4:]), wantErr: []error{ErrInvalidMagic}},
		{name: "short-header", data: valid[:9], wantErr: []error{ErrTruncated}},
		{name: "zero-width", data: join(header(0, 4, 0x01), []byte{alphaOpaque}), wantErr: []error{ErrInvalidDimensions}},
		{name: "unknown-mode", data: join(header(1, 1, 0x41), []byte{alphaOpaque, 0}), wantErr: []error{ErrUnknownMode}},
		{name: "zero-mips", data: join(header(1, 1, 0x00), []byte{alphaOpaque, 0}), wantErr: []error{ErrInvalidMipCount}},
		{name: "truncated-payload", data: valid[:len(valid)-1], wantErr: []error{ErrDecodeLevel, ErrTruncated}},
		{name: "missing-level", data: join(header(1, 1, 0x02), []byte{alphaOpaque, 0}), wantErr: []error{ErrDecodeLevel, ErrTruncated}},
		{name: "trailing-data", data: join(valid, []byte{0}), wantErr: []error{ErrTrailingData}},
		{name: "unknown-opcode", data: join(header(1, 1, 0x01), []byte{alphaOpaque, 0xe1}), wantErr: []error{ErrDecodeLevel, ErrUnknownOpcode}},
		{name: "run-overflow", data: join(header(1, 1, 0x01), []byte{alphaOpaque, opRunShort}), wantErr: []error{ErrDecodeLevel, ErrRunOverflow}},
		{name: "alpha-flag", data: join(header(1, 1, 0x01), []byte{2, 0}), wantErr: []error{ErrDecodeLevel, ErrInvalidAlphaFlag}},
		{name: "gray-flag", data: join(header(2, 2, 0x32), []byte{alphaOpaque, 0, 0, 0, 0, 5, alphaOpaque, 0}), wantErr: []error{ErrDecodeLevel, ErrInvalidGrayFlag}},
		{name: "patch-count", data: join(header(2, 2, 0x22), []byte{1, 9, 9, 9, alphaOpaque, 0, 0xff, 2, 49}), wantErr: []error{ErrDecodeLevel, ErrInvalidPatch}},
		{name: "palette-run-overflow", data: join(header(1, 1, 0x21), []byte{1, 9, 9, 9, alphaOpaque, 0xff, 1}), wantErr: []error{ErrDecodeLevel, ErrRunOverflow}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			levels, err := Decode(tc.data)
			if levels != nil {
				t.Fatalf("expected no levels on error, got %d", len(levels))
			}
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected error %v, got %v", want, err)
				}
			}
		})
	}
}

func TestDecodeLevels(t *testing.T) {
	t.Parallel()

	levels := testChain(newTestImage(t, 32, 8, noisy), 6)
	data, err := Encode(levels)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// a truncated tail only matters when the caller asks for it
	cut := data[:len(data)-2]
	hdr, got, err := DecodeLevels(cut, 3)
	if err != nil {
		t.Fatalf("DecodeLevels: %v", err)
	}
	if hdr.MipCount != 6 || len(got) != 3 {
		t.Fatalf("DecodeLevels = %d of %d levels, want 3 of 6", len(got), hdr.MipCount)
	}
	for i := range got {
		if !bytes.Equal(got[i].Pix, levels[i].Pix) {
			t.Fatalf("level %d: pixel mismatch", i)
		}
	}

	if _, _, err := DecodeLevels(cut, 6); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for the full chain, got %v", err)
	}
	if _, _, err := DecodeLevels(data, 0); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if _, all, err := DecodeLevels(data, 99); err != nil || len(all) != 6 {
		t.Fatalf("DecodeLevels(99) = %d levels, %v", len(all), err)
	}
}

func TestHeaderLevelSize(t *testing.T) {
	t.Parallel()

	h := Header{Width: 13, Height: 4, MipCount: 4}
	tests := []struct {
		level, w, h int
	}{
		{0, 13, 4},
		{1, 6, 2},
		{2, 3, 1},
		{3, 1, 1},
	}
	for _, tc := range tests {
		if w, hh := h.LevelSize(tc.level); w != tc.w || hh != tc.h {
			t.Fatalf("LevelSize(%d) = %dx%d, want %dx%d", tc.level, w, hh, tc.w, tc.h)
		}
	}
}

func TestReadHeaderShort(t *testing.T) {
	t.Parallel()

	_, err := ReadHeader(bytes.NewReader([]byte("LIF\x00\x01")))
	if !errors.Is(err, ErrReadHeader) {
		t.Fatalf("expected ErrReadHeader, got %v", err)
	}
}

func TestIsLIF(t *testing.T) {
	t.Parallel()

	if !IsLIF([]byte("LIF\x00rest")) {
		t.Fatalf("IsLIF rejected a LIF marker")
	}
	if IsLIF([]byte("LIF")) || IsLIF([]byte("DDS \x00")) {
		t.Fatalf("IsLIF accepted a foreign marker")
	}
}

func TestEncodeToDecodeFrom(t *testing.T) {
	t.Parallel()

	levels := testChain(newTestImage(t, 16, 16, noisy), 5)
	var buf bytes.Buffer
	if err := EncodeTo(&buf, levels, nil); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}

	got, err := DecodeFrom(&buf)
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if len(got) != len(levels) || !bytes.Equal(got[4].Pix, levels[4].Pix) {
		t.Fatalf("DecodeFrom returned a different chain")
	}
}

func TestImageRegistration(t *testing.T) {
	t.Parallel()

	base := newTestImage(t, 8, 6, noisy)
	data, err := Encode(testChain(base, 3))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if format != "lif" || cfg.Width != 8 || cfg.Height != 6 {
		t.Fatalf("DecodeConfig = %q %dx%d", format, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA, got %T", img)
	}
	if format != "lif" || !bytes.Equal(nrgba.Pix, base.Pix) {
		t.Fatalf("image.Decode returned a different base level")
	}
}
