package storage_test

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
	"github.com/dargueta/hashpix/storage"
	htest "github.com/dargueta/hashpix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorCodecFor(t *testing.T) {
	assert.Equal(t, storage.PPM{}, storage.ColorCodecFor("a/b/input.ppm"))
	assert.Equal(t, storage.PPM{}, storage.ColorCodecFor("no-extension"))
	assert.Equal(t, storage.ImageFile{Format: "png"}, storage.ColorCodecFor("x.PNG"))
	assert.Equal(t, storage.ImageFile{Format: "jpeg"}, storage.ColorCodecFor("x.jpg"))
	assert.Equal(t, storage.ImageFile{Format: "tiff"}, storage.ColorCodecFor("x.tif"))
}

func TestSaveLoad__AllKinds(t *testing.T) {
	dir := t.TempDir()
	colors := htest.SparseImage(11, 13, 7, 3)
	mask := htest.ParseMask(t, "#..#", ".##.")
	offsets := raster.New[raster.Offset](3, 3)
	offsets.Fill(raster.Offset{DX: 2, DY: 5})

	for _, name := range []string{"colors.ppm", "colors.png", "colors.bmp", "colors.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, storage.SaveColors(path, colors))
			loaded, err := storage.LoadColors(path)
			require.NoError(t, err)
			assert.True(t, colors.Equal(loaded))
		})
	}

	maskPath := filepath.Join(dir, "mask.pbm")
	require.NoError(t, storage.SaveMask(maskPath, mask))
	loadedMask, err := storage.LoadMask(maskPath)
	require.NoError(t, err)
	assert.True(t, mask.Equal(loadedMask))

	offsetPath := filepath.Join(dir, "table.offset")
	require.NoError(t, storage.SaveOffsets(offsetPath, offsets))
	loadedOffsets, err := storage.LoadOffsets(offsetPath)
	require.NoError(t, err)
	assert.True(t, offsets.Equal(loadedOffsets))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 6, "temporary files were left behind")
}

func TestLoad__Missing(t *testing.T) {
	_, err := storage.LoadMask(filepath.Join(t.TempDir(), "nope.pbm"))
	assert.ErrorIs(t, err, hashpix.ErrIOFailed)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad__WrongFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.pbm")
	require.NoError(t, os.WriteFile(path, []byte("P6\n1 1\n255\n\x00\x00\x00"), 0o644))

	_, err := storage.LoadMask(path)
	assert.ErrorIs(t, err, hashpix.ErrInvalidFormat)
	assert.Contains(t, err.Error(), path)
}

func TestSave__MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.ppm")
	err := storage.SaveColors(path, raster.New[raster.Color](1, 1))
	assert.ErrorIs(t, err, hashpix.ErrIOFailed)
}

func TestSave__EncodeFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.offset")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	bad := raster.New[raster.Offset](1, 1)
	bad.Set(0, 0, raster.Offset{DY: 99})
	err := storage.SaveOffsets(path, bad)
	require.ErrorIs(t, err, hashpix.ErrOffsetOutOfRange)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(contents))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file was left behind")
}

func TestImageFile__TransparentIsBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	path := filepath.Join(t.TempDir(), "alpha.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, src))
	require.NoError(t, file.Close())

	img, err := storage.LoadColors(path)
	require.NoError(t, err)
	assert.Equal(t, raster.Background, img.At(0, 0))
	assert.Equal(t, raster.Color{R: 40, G: 50, B: 60}, img.At(1, 0))
}

func TestImageFile__UnsupportedEncoder(t *testing.T) {
	err := storage.SaveColors(filepath.Join(t.TempDir(), "out.webp"), raster.New[raster.Color](1, 1))
	assert.ErrorIs(t, err, hashpix.ErrNotSupported)
}

func TestImageFile__EmptyRaster(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"empty.png", "empty.bmp", "empty.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, storage.SaveColors(path, raster.New[raster.Color](0, 0)))

			loaded, err := storage.LoadColors(path)
			require.NoError(t, err)
			assert.Equal(t, 1, loaded.Width())
			assert.Equal(t, 1, loaded.Height())
			assert.Equal(t, raster.Background, loaded.At(0, 0))
		})
	}
}
