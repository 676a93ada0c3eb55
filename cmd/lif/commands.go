// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/woozymasta/lif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
)

var errUnknownOutputFormat = errors.New("unknown output format")

func parseMode(s string) (lif.Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return lif.ModeAuto, nil
	case "color":
		return lif.ModeColor, nil
	case "coloridx2":
		return lif.ModeColorIdx2, nil
	case "palette":
		return lif.ModePalette, nil
	case "gray", "grey":
		return lif.ModeGray, nil
	default:
		return 0, fmt.Errorf("%w: %q", lif.ErrUnknownMode, s)
	}
}

// outputPath replaces the extension of in with ext, placing the result in
// dir when it is set.
func outputPath(in, dir, ext string) string {
	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ext
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, name)
}

// forEachFile runs fn for every argument with at most jobs running at once.
// Files are independent streams, so nothing is shared between calls.
func forEachFile(c *cli.Context, jobs int, fn func(path string) error) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	var g errgroup.Group
	g.SetLimit(max(1, jobs))
	for _, path := range c.Args().Slice() {
		g.Go(func() error {
			if err := fn(path); err != nil {
				slog.Error("processing failed", "file", path, "error", err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func encodeAction(c *cli.Context) error {
	mode, err := parseMode(c.String("mode"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	colors := c.Int("colors")
	if err := checkColors(colors); err != nil {
		return cli.Exit(err, 1)
	}
	opts := &lif.WriteOptions{
		MaxMipMaps:    c.Int("mips"),
		EncodeOptions: &lif.EncodeOptions{Mode: mode},
	}
	dir := c.String("out")

	return forEachFile(c, c.Int("jobs"), func(path string) error {
		out, err := encodeFile(path, dir, colors, opts)
		if err != nil {
			return err
		}
		slog.Info("encoded", "from", path, "to", out)
		return nil
	})
}

func encodeFile(in, dir string, colors int, opts *lif.WriteOptions) (string, error) {
	img, err := decodeInput(in)
	if err != nil {
		return "", err
	}
	if img, err = reduceColors(img, colors); err != nil {
		return "", err
	}

	out := outputPath(in, dir, ".lif")
	if err := lif.WriteWithOptions(img, out, opts); err != nil {
		return "", fmt.Errorf("could not write %q: %w", out, err)
	}
	return out, nil
}

func decodeInput(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, nil
}

func decodeAction(c *cli.Context) error {
	level := c.Int("level")
	format := strings.ToLower(c.String("format"))
	if _, err := imageEncoder(format); err != nil {
		return cli.Exit(err, 1)
	}
	dir := c.String("out")

	return forEachFile(c, c.Int("jobs"), func(path string) error {
		out, err := decodeFile(path, dir, level, format)
		if err != nil {
			return err
		}
		slog.Info("decoded", "from", path, "to", out, "level", level)
		return nil
	})
}

func imageEncoder(format string) (func(io.Writer, image.Image) error, error) {
	switch format {
	case "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	case "tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownOutputFormat, format)
	}
}

func decodeFile(in, dir string, level int, format string) (string, error) {
	enc, err := imageEncoder(format)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("could not read %q: %w", in, err)
	}
	hdr, err := lif.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if level < 0 || level >= hdr.MipCount {
		return "", fmt.Errorf("%w: %d of %d", lif.ErrInvalidLevel, level, hdr.MipCount)
	}

	_, levels, err := lif.DecodeLevels(data, level+1)
	if err != nil {
		return "", fmt.Errorf("could not decode %q: %w", in, err)
	}

	ext := "." + format
	if level > 0 {
		ext = fmt.Sprintf(".mip%d.%s", level, format)
	}
	out := outputPath(in, dir, ext)

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("could not create %q: %w", out, err)
	}
	defer func() { _ = f.Close() }()

	if err := enc(f, levels[level].NRGBA()); err != nil {
		return "", fmt.Errorf("could not encode %q: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not flush %q: %w", out, err)
	}
	return out, nil
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	for _, path := range c.Args().Slice() {
		if err := printInfo(c.App.Writer, path); err != nil {
			return cli.Exit(err, 1)
		}
	}
	return nil
}

func printInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hdr, err := lif.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}

	fmt.Fprintf(w, "%s: %dx%d mode=%s mips=%d\n", path, hdr.Width, hdr.Height, hdr.Mode, hdr.MipCount)
	for i := 0; i < hdr.MipCount; i++ {
		lw, lh := hdr.LevelSize(i)
		fmt.Fprintf(w, "  level %d: %dx%d\n", i, lw, lh)
	}
	return nil
}
