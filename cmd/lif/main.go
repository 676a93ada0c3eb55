// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lif

package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
	"github.com/woozymasta/lif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("lif failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "lif"
	app.Usage = "LIF mipmapped lossless image utility"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"LIF_VERBOSE"},
			Usage:   "log codec decisions",
		},
	}

	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		if c.Bool("verbose") {
			lif.SetLogger(logger)
		}
		return nil
	}

	jobsFlag := &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		EnvVars: []string{"LIF_JOBS"},
		Value:   runtime.GOMAXPROCS(0),
		Usage:   "files processed in parallel",
	}
	outFlag := &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output directory (default: next to the input)",
	}
	mipsFlag := &cli.IntFlag{
		Name:    "mips",
		EnvVars: []string{"LIF_MIPS"},
		Usage:   "maximum mip levels, 0 for full chain",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode images into LIF files with their mip chain",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				mipsFlag,
				&cli.StringFlag{
					Name:    "mode",
					EnvVars: []string{"LIF_MODE"},
					Value:   "auto",
					Usage:   "encode method: auto, color, coloridx2, palette, gray",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce to at most N colors (2..255) before encoding, 0 keeps the image lossless",
				},
				outFlag,
				jobsFlag,
			},
			Action: encodeAction,
		},
		{
			Name:      "decode",
			Usage:     "Decode one level of LIF files into a regular image",
			ArgsUsage: "FILE.lif...",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "level",
					Usage: "mip level to extract",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "output format: png, bmp, tiff",
				},
				outFlag,
				jobsFlag,
			},
			Action: decodeAction,
		},
		{
			Name:      "info",
			Usage:     "Print LIF header information",
			ArgsUsage: "FILE.lif...",
			Action:    infoAction,
		},
		{
			Name:      "stat",
			Usage:     "Compare LIF size against LZ4 and zstd of the raw mip chain",
			ArgsUsage: "FILE...",
			Flags:     []cli.Flag{mipsFlag},
			Action:    statAction,
		},
	}

	return app
}
