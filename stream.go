// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package lif

import "fmt"

// writer accumulates an encoded stream in memory.
type writer struct {
	buf []byte
}

func (w *writer) byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) write(p ...byte) {
	w.buf = append(w.buf, p...)
}

func (w *writer) int32(v int32) {
	u := uint32(v)
	w.buf = append(w.buf, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

// reader walks an encoded stream; every read is bounds-checked.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrTruncated, r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// bytes returns the next n bytes without copying.
func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.pos, len(r.data)-r.pos)
	}
	p := r.data[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

func (r *reader) int32() (int32, error) {
	p, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24), nil
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}
