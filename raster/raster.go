// Package raster provides the dense two-dimensional pixel container shared by
// the compressor, the decoder, and the file formats.
package raster

import "fmt"

// Raster is a W x H grid of pixels stored in row-major order, so the pixel at
// (x, y) lives at index y*W + x.
//
// Rasters are handled by pointer; use Clone to copy one. Two rasters never
// share a buffer unless the same pointer is held twice.
type Raster[P Pixel] struct {
	width  int
	height int
	pix    []P
}

// New returns a raster allocated to the given size. See Allocate for the
// accepted dimensions.
func New[P Pixel](width, height int) *Raster[P] {
	img := &Raster[P]{}
	img.Allocate(width, height)
	return img
}

// Allocate discards the current buffer and replaces it with a new one of the
// given size, with every pixel set to the default for P: Background for
// colors, false for booleans, and (0,0) for offsets.
//
// Allocating a 0x0 raster is valid and gives an empty raster. Any other
// non-positive dimension is a programming error and panics.
func (img *Raster[P]) Allocate(width, height int) {
	if width == 0 && height == 0 {
		img.width, img.height, img.pix = 0, 0, nil
		return
	}
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid raster dimensions %dx%d", width, height))
	}

	img.width = width
	img.height = height
	img.pix = make([]P, width*height)

	fill := defaultPixel[P]()
	var zero P
	if fill != zero {
		img.Fill(fill)
	}
}

func defaultPixel[P Pixel]() P {
	var zero P
	if _, ok := any(zero).(Color); ok {
		return any(Background).(P)
	}
	return zero
}

func (img *Raster[P]) Width() int {
	return img.width
}

func (img *Raster[P]) Height() int {
	return img.height
}

// Len returns the total number of pixels, W*H.
func (img *Raster[P]) Len() int {
	return len(img.pix)
}

// Empty returns true for a 0x0 raster.
func (img *Raster[P]) Empty() bool {
	return len(img.pix) == 0
}

func (img *Raster[P]) index(x, y int) int {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(
			fmt.Sprintf(
				"pixel (%d, %d) out of bounds for %dx%d raster",
				x, y, img.width, img.height))
	}
	return y*img.width + x
}

// At returns the pixel at (x, y). It panics if the coordinates are outside the
// raster.
func (img *Raster[P]) At(x, y int) P {
	return img.pix[img.index(x, y)]
}

// Set changes the pixel at (x, y). It panics if the coordinates are outside the
// raster.
func (img *Raster[P]) Set(x, y int, value P) {
	img.pix[img.index(x, y)] = value
}

// Fill sets every pixel to value.
func (img *Raster[P]) Fill(value P) {
	for i := range img.pix {
		img.pix[i] = value
	}
}

// Clone returns a deep copy of the raster.
func (img *Raster[P]) Clone() *Raster[P] {
	dup := &Raster[P]{width: img.width, height: img.height}
	if img.pix != nil {
		dup.pix = make([]P, len(img.pix))
		copy(dup.pix, img.pix)
	}
	return dup
}

// Equal returns true if both rasters have the same dimensions and identical
// pixels.
func (img *Raster[P]) Equal(other *Raster[P]) bool {
	if img.width != other.width || img.height != other.height {
		return false
	}
	for i, v := range img.pix {
		if other.pix[i] != v {
			return false
		}
	}
	return true
}

// Count returns the number of pixels equal to value.
func (img *Raster[P]) Count(value P) int {
	n := 0
	for _, v := range img.pix {
		if v == value {
			n++
		}
	}
	return n
}

// Each calls fn for every pixel in row-major order.
func (img *Raster[P]) Each(fn func(x, y int, value P)) {
	for i, v := range img.pix {
		fn(i%img.width, i/img.width, v)
	}
}

func (img *Raster[P]) String() string {
	return fmt.Sprintf("Raster[%T](%dx%d)", defaultPixel[P](), img.width, img.height)
}

// SameSize returns true if two rasters, possibly of different pixel kinds,
// have identical dimensions.
func SameSize[A, B Pixel](a *Raster[A], b *Raster[B]) bool {
	return a.Width() == b.Width() && a.Height() == b.Height()
}
