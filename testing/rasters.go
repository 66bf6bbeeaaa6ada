// Package testing holds fixtures shared by the tests of the other packages.
package testing

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// Palette maps the characters accepted by ParseColors to colors. '.' is the
// background.
var Palette = map[rune]raster.Color{
	'.': raster.Background,
	'r': {R: 255},
	'g': {G: 255},
	'b': {B: 255},
	'k': {},
	'x': {R: 10, G: 20, B: 30},
	'y': {R: 200, G: 200, B: 0},
}

// ParseColors builds a color raster from rows of characters, one character per
// pixel, using Palette.
func ParseColors(t *testing.T, rows ...string) *raster.Raster[raster.Color] {
	if len(rows) == 0 {
		return raster.New[raster.Color](0, 0)
	}

	img := raster.New[raster.Color](len(rows[0]), len(rows))
	for y, row := range rows {
		require.Equalf(t, img.Width(), len(row), "row %d has the wrong width", y)
		for x, ch := range row {
			c, ok := Palette[ch]
			require.Truef(t, ok, "unknown pixel %q at (%d, %d)", ch, x, y)
			img.Set(x, y, c)
		}
	}
	return img
}

// ParseMask builds a boolean raster from rows of characters; '#' is true and
// '.' is false.
func ParseMask(t *testing.T, rows ...string) *raster.Raster[bool] {
	if len(rows) == 0 {
		return raster.New[bool](0, 0)
	}

	img := raster.New[bool](len(rows[0]), len(rows))
	for y, row := range rows {
		require.Equalf(t, img.Width(), len(row), "row %d has the wrong width", y)
		for x, ch := range row {
			require.Containsf(t, "#.", string(ch), "unknown mask pixel at (%d, %d)", x, y)
			img.Set(x, y, ch == '#')
		}
	}
	return img
}

// SparseImage returns a width x height image where roughly one pixel in
// `every` is a non-background color. The same seed always gives the same image.
func SparseImage(seed uint64, width, height, every int) *raster.Raster[raster.Color] {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := raster.New[raster.Color](width, height)
	for y := range height {
		for x := range width {
			if rng.IntN(every) != 0 {
				continue
			}
			img.Set(x, y, raster.Color{
				R: uint8(rng.IntN(255)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
			})
		}
	}
	return img
}

// RoundTrip encodes img with codec into an in-memory file of at most maxSize
// bytes, then decodes it back. It returns the decoded raster and the encoded
// size.
func RoundTrip[P raster.Pixel](
	t *testing.T, codec hashpix.RasterCodec[P], img *raster.Raster[P], maxSize int,
) (*raster.Raster[P], int64) {
	file := bytesextra.NewReadWriteSeeker(make([]byte, maxSize))

	require.NoError(t, codec.Encode(file, img), "encoding failed")
	size, err := file.Seek(0, io.SeekCurrent)
	require.NoError(t, err)

	_, err = file.Seek(0, io.SeekStart)
	require.NoError(t, err)

	decoded, err := codec.Decode(io.LimitReader(file, size))
	require.NoError(t, err, "decoding failed")
	return decoded, size
}
