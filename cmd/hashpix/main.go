// Command hashpix compresses sparse images with a perfect hash and puts them
// back together.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	exitUsage  = 1
	exitFailed = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return 0
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if message := exitErr.Error(); message != "" {
			fmt.Fprintln(stderr, "error:", message)
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintln(stderr, "error:", err)
	return exitFailed
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "hashpix",
		Usage:     "Compress sparse images into an occupancy mask, a color table, and an offset table",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log search progress",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:         "compress",
				Usage:        "Compress an image into three artifact files",
				ArgsUsage:    "INPUT MASK_FILE COLORS_FILE OFFSETS_FILE",
				Action:       compressImage,
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of trials to evaluate concurrently",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "write a YAML summary of the run and the artifact digests to `FILE`",
					},
				},
			},
			{
				Name:         "uncompress",
				Usage:        "Rebuild an image from its artifact files",
				ArgsUsage:    "MASK_FILE COLORS_FILE OFFSETS_FILE OUTPUT",
				Action:       uncompressImage,
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "check the artifacts against the summary in `FILE` first",
					},
				},
			},
			{
				Name:         "compare",
				Usage:        "Compare two images pixel by pixel",
				ArgsUsage:    "FIRST SECOND DIFF_MASK",
				Action:       compareImages,
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "report",
						Usage: "write the differing pixels to `FILE` as CSV",
					},
				},
			},
			{
				Name:         "visualize_offset",
				Usage:        "Render an offset table as a color image",
				ArgsUsage:    "OFFSETS_FILE OUTPUT",
				Action:       visualizeOffsets,
				OnUsageError: onUsageError,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError(c, "")
			}
			return usageError(c, fmt.Sprintf("unknown command %q", c.Args().First()))
		},
		OnUsageError:   onUsageError,
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// usageError prints the help text and returns an error that makes run exit
// with exitUsage.
func usageError(c *cli.Context, message string) error {
	if err := cli.ShowAppHelp(c); err != nil {
		slog.Debug("could not show help", "error", err)
	}
	return cli.Exit(message, exitUsage)
}

func onUsageError(c *cli.Context, err error, _ bool) error {
	return usageError(c, err.Error())
}

// checkArgs fails with a usage error unless exactly n positional arguments were
// given.
func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return usageError(
			c, fmt.Sprintf("%s takes %d arguments, got %d", c.Command.Name, n, c.NArg()))
	}
	return nil
}
