package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
)

// imageFormats maps file extensions to the format names used by the image
// package.
var imageFormats = map[string]string{
	".png":  "png",
	".gif":  "gif",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// ColorCodecFor picks the codec for a color raster from the extension of path.
// Anything that isn't a recognized image extension is treated as PPM.
func ColorCodecFor(path string) hashpix.RasterCodec[raster.Color] {
	if format, ok := imageFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return ImageFile{Format: format}
	}
	return PPM{}
}

func LoadColors(path string) (*raster.Raster[raster.Color], error) {
	return Load[raster.Color](path, ColorCodecFor(path))
}

func SaveColors(path string, img *raster.Raster[raster.Color]) error {
	return Save[raster.Color](path, ColorCodecFor(path), img)
}

func LoadMask(path string) (*raster.Raster[bool], error) {
	return Load[bool](path, PBM{})
}

func SaveMask(path string, img *raster.Raster[bool]) error {
	return Save[bool](path, PBM{}, img)
}

func LoadOffsets(path string) (*raster.Raster[raster.Offset], error) {
	return Load[raster.Offset](path, OffsetFile{})
}

func SaveOffsets(path string, img *raster.Raster[raster.Offset]) error {
	return Save[raster.Offset](path, OffsetFile{}, img)
}

// Load reads a raster from the file at path using codec.
func Load[P raster.Pixel](path string, codec hashpix.RasterDecoder[P]) (*raster.Raster[P], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("opening %q", path)).Wrap(err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("could not close file", "name", path, "error", closeErr)
		}
	}()

	img, err := codec.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", path, err)
	}

	slog.Debug("loaded raster", "file", path, "width", img.Width(), "height", img.Height())
	return img, nil
}

// Save writes a raster to path using codec. The data goes to a temporary file
// in the same directory first, which replaces path only if everything was
// written successfully.
func Save[P raster.Pixel](path string, codec hashpix.RasterEncoder[P], img *raster.Raster[P]) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return hashpix.ErrIOFailed.WithMessage(
			fmt.Sprintf("creating temporary file for %q", path)).Wrap(err)
	}

	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("flushing %q", path)).Wrap(defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("closing %q", path)).Wrap(defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("renaming to %q", path)).Wrap(defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = codec.Encode(outFile, img); err != nil {
		return fmt.Errorf("could not save %q: %w", path, err)
	}

	slog.Debug("saved raster", "file", path, "width", img.Width(), "height", img.Height())
	canRename = true
	return nil
}
