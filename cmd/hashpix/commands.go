package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/compression"
	"github.com/dargueta/hashpix/inspect"
	"github.com/dargueta/hashpix/manifest"
	"github.com/dargueta/hashpix/storage"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
)

func compressImage(c *cli.Context) error {
	if err := checkArgs(c, 4); err != nil {
		return err
	}
	inputPath := c.Args().Get(0)
	maskPath := c.Args().Get(1)
	colorsPath := c.Args().Get(2)
	offsetsPath := c.Args().Get(3)

	source, err := storage.LoadColors(inputPath)
	if err != nil {
		return err
	}

	result := compression.Compress(source, &compression.Options{Workers: c.Int("workers")})
	if result.Found() {
		slog.Info(
			"compressed image",
			"file", inputPath,
			"occupied", result.Occupied,
			"hash_size", result.HashSize,
			"offset_size", result.OffsetSize,
			"trials", result.Trials)
	} else {
		slog.Warn(
			"no perfect hash found, writing placeholder artifacts",
			"file", inputPath,
			"diagnostic", result.Diagnostic)
	}

	// Try to write every artifact even if one fails, so the user sees all the
	// problems at once.
	var saveErrors *multierror.Error
	if err := storage.SaveMask(maskPath, result.Mask); err != nil {
		saveErrors = multierror.Append(saveErrors, err)
	}
	if err := storage.SaveColors(colorsPath, result.Colors); err != nil {
		saveErrors = multierror.Append(saveErrors, err)
	}
	if err := storage.SaveOffsets(offsetsPath, result.Offsets); err != nil {
		saveErrors = multierror.Append(saveErrors, err)
	}
	if err := saveErrors.ErrorOrNil(); err != nil {
		return err
	}

	summaryPath := c.String("summary")
	if summaryPath == "" {
		return nil
	}

	summary := manifest.New(inputPath, result)
	artifacts := []struct{ role, path string }{
		{manifest.RoleMask, maskPath},
		{manifest.RoleColors, colorsPath},
		{manifest.RoleOffsets, offsetsPath},
	}
	for _, artifact := range artifacts {
		if err := summary.AddArtifact(artifact.role, artifact.path); err != nil {
			return err
		}
	}
	return manifest.Write(summaryPath, summary)
}

func uncompressImage(c *cli.Context) error {
	if err := checkArgs(c, 4); err != nil {
		return err
	}
	maskPath := c.Args().Get(0)
	colorsPath := c.Args().Get(1)
	offsetsPath := c.Args().Get(2)
	outputPath := c.Args().Get(3)

	if manifestPath := c.String("manifest"); manifestPath != "" {
		if err := verifyArtifacts(manifestPath, maskPath, colorsPath, offsetsPath); err != nil {
			return err
		}
	}

	mask, err := storage.LoadMask(maskPath)
	if err != nil {
		return err
	}
	colors, err := storage.LoadColors(colorsPath)
	if err != nil {
		return err
	}
	offsets, err := storage.LoadOffsets(offsetsPath)
	if err != nil {
		return err
	}

	if err := compression.Validate(mask, colors, offsets); err != nil {
		return err
	}
	return storage.SaveColors(outputPath, compression.Decompress(mask, colors, offsets))
}

func verifyArtifacts(manifestPath, maskPath, colorsPath, offsetsPath string) error {
	summary, err := manifest.Read(manifestPath)
	if err != nil {
		return err
	}

	var mismatches *multierror.Error
	if err := summary.Verify(manifest.RoleMask, maskPath); err != nil {
		mismatches = multierror.Append(mismatches, err)
	}
	if err := summary.Verify(manifest.RoleColors, colorsPath); err != nil {
		mismatches = multierror.Append(mismatches, err)
	}
	if err := summary.Verify(manifest.RoleOffsets, offsetsPath); err != nil {
		mismatches = multierror.Append(mismatches, err)
	}
	if err := mismatches.ErrorOrNil(); err != nil {
		return err
	}

	slog.Debug("artifacts match manifest", "file", manifestPath)
	return nil
}

func compareImages(c *cli.Context) error {
	if err := checkArgs(c, 3); err != nil {
		return err
	}
	firstPath := c.Args().Get(0)
	secondPath := c.Args().Get(1)
	diffPath := c.Args().Get(2)

	first, err := storage.LoadColors(firstPath)
	if err != nil {
		return err
	}
	second, err := storage.LoadColors(secondPath)
	if err != nil {
		return err
	}

	result, err := inspect.Compare(first, second)
	if errors.Is(err, hashpix.ErrDimensionMismatch) {
		slog.Error("can't compare images", "first", firstPath, "second", secondPath, "error", err)
		return nil
	} else if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, result)
	if err := storage.SaveMask(diffPath, result.Matches); err != nil {
		return err
	}

	reportPath := c.String("report")
	if reportPath == "" {
		return nil
	}

	var report bytes.Buffer
	if err := inspect.WriteReport(&report, result); err != nil {
		return err
	}
	if err := os.WriteFile(reportPath, report.Bytes(), 0o644); err != nil {
		return hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("writing %q", reportPath)).Wrap(err)
	}
	return nil
}

func visualizeOffsets(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	offsets, err := storage.LoadOffsets(c.Args().Get(0))
	if err != nil {
		return err
	}
	return storage.SaveColors(c.Args().Get(1), inspect.Visualize(offsets))
}
