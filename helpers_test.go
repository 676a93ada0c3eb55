package lif

import (
	"bytes"
	"testing"
)

// newTestImage builds a level from a per-pixel color function.
func newTestImage(t testing.TB, w, h int, fn func(x, y int) (r, g, b, a uint8)) *Image {
	t.Helper()

	img, err := NewImage(w, h)
	if err != nil {
		t.Fatalf("NewImage(%d,%d): %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = fn(x, y)
		}
	}
	return img
}

// rowImage builds a 1-pixel-high level from a list of opaque colors.
func rowImage(t testing.TB, colors []rgb) *Image {
	t.Helper()

	return newTestImage(t, len(colors), 1, func(x, _ int) (uint8, uint8, uint8, uint8) {
		c := colors[x]
		return c.R, c.G, c.B, 255
	})
}

// halve returns the next level of img by point sampling.
func halve(img *Image) *Image {
	w, h := max(1, img.Width/2), max(1, img.Height/2)
	out := &Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := min(x*2, img.Width-1), min(y*2, img.Height-1)
			copy(out.Pix[(y*w+x)*4:], img.Pix[(sy*img.Width+sx)*4:(sy*img.Width+sx)*4+4])
		}
	}
	return out
}

// testChain builds a chain of n levels starting at base.
func testChain(base *Image, n int) []*Image {
	levels := []*Image{base}
	for len(levels) < n {
		levels = append(levels, halve(levels[len(levels)-1]))
	}
	return levels
}

func assertRoundTrip(t *testing.T, levels []*Image, opts *EncodeOptions) []byte {
	t.Helper()

	data, err := EncodeWithOptions(levels, opts)
	if err != nil {
		t.Fatalf("EncodeWithOptions: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != len(levels) {
		t.Fatalf("decoded %d levels, want %d", len(got), len(levels))
	}
	for i := range levels {
		if got[i].Width != levels[i].Width || got[i].Height != levels[i].Height {
			t.Fatalf("level %d: size %dx%d, want %dx%d", i, got[i].Width, got[i].Height, levels[i].Width, levels[i].Height)
		}
		if !bytes.Equal(got[i].Pix, levels[i].Pix) {
			t.Fatalf("level %d: pixel mismatch", i)
		}
	}
	return data
}

// noisy is a deterministic pattern with mixed low/high frequencies.
func noisy(x, y int) (uint8, uint8, uint8, uint8) {
	return uint8((x*7 + y*3) & 0xff), //nolint:gosec // bounded by mask
		uint8((x*13 + y*5) & 0xff), //nolint:gosec // bounded by mask
		uint8((x ^ y ^ (x >> 2)) & 0xff), //nolint:gosec // bounded by mask
		uint8(255 - (x*y)&0x3f) //nolint:gosec // bounded by mask
}
