// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"text/tabwriter"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/urfave/cli/v2"
	"github.com/woozymasta/lif"
)

var errRoundTrip = errors.New("round-trip mismatch")

// chainStats holds encoded sizes of one mip chain.
type chainStats struct {
	Mode   lif.Mode
	Levels int
	Raw    int
	LIF    int
	LZ4    int
	Zstd   int
}

func statAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tMODE\tLEVELS\tRAW\tLIF\tLZ4\tZSTD")
	for _, path := range c.Args().Slice() {
		img, err := decodeInput(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		st, err := computeStats(img, c.Int("mips"))
		if err != nil {
			return cli.Exit(fmt.Errorf("%q: %w", path, err), 1)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n", path, st.Mode, st.Levels, st.Raw, st.LIF, st.LZ4, st.Zstd)
	}
	return tw.Flush()
}

// computeStats encodes the chain of img, verifies the LIF round trip and
// measures LZ4-HC and zstd on the same raw RGBA bytes.
func computeStats(img image.Image, maxLevels int) (chainStats, error) {
	levels, err := lif.GenerateMipmaps(img, maxLevels)
	if err != nil {
		return chainStats{}, err
	}

	var raw []byte
	for _, l := range levels {
		raw = append(raw, l.Pix...)
	}

	data, err := lif.Encode(levels)
	if err != nil {
		return chainStats{}, err
	}
	hdr, decoded, err := lif.DecodeLevels(data, len(levels))
	if err != nil {
		return chainStats{}, err
	}
	for i, l := range decoded {
		if !bytes.Equal(l.Pix, levels[i].Pix) {
			return chainStats{}, fmt.Errorf("%w: level %d", errRoundTrip, i)
		}
	}

	lz4N, err := lz4Size(raw)
	if err != nil {
		return chainStats{}, err
	}
	zstdN, err := zstdSize(raw)
	if err != nil {
		return chainStats{}, err
	}

	return chainStats{
		Mode:   hdr.Mode,
		Levels: len(levels),
		Raw:    len(raw),
		LIF:    len(data),
		LZ4:    lz4N,
		Zstd:   zstdN,
	}, nil
}

// lz4Size returns the LZ4-HC block size of data, or len(data) when the block
// is incompressible.
func lz4Size(data []byte) (int, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlockHC(data, buf, 0, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4: %w", err)
	}
	if n == 0 {
		return len(data), nil
	}
	return n, nil
}

func zstdSize(data []byte) (int, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return 0, fmt.Errorf("zstd: %w", err)
	}
	defer func() { _ = enc.Close() }()

	return len(enc.EncodeAll(data, nil)), nil
}
