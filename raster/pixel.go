package raster

import "fmt"

// Pixel is the set of pixel kinds a Raster can hold.
type Pixel interface {
	Color | bool | Offset
}

// Color is a 24-bit RGB pixel.
type Color struct {
	R, G, B uint8
}

// Background is the color that compression treats as empty space. Pixels of
// this color are never hashed.
var Background = Color{R: 255, G: 255, B: 255}

// IsBackground returns true if c is exactly the background color.
func (c Color) IsBackground() bool {
	return c == Background
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// MaxOffset is the largest value either component of an Offset may take. On
// disk an Offset is a single byte, four bits per component.
const MaxOffset = 15

// Offset is a per-region displacement applied to a pixel's coordinates before
// they're wrapped into the color table.
//
// The components are stored as full bytes so the search can work with them
// directly; the [0, MaxOffset] range is checked wherever an Offset is packed
// or rendered.
type Offset struct {
	DX, DY uint8
}

// Valid returns true if both components fit in four bits.
func (o Offset) Valid() bool {
	return o.DX <= MaxOffset && o.DY <= MaxOffset
}

// Pack returns the one-byte wire form of the offset, DX in the high nibble and
// DY in the low one. It panics if the offset is out of range.
func (o Offset) Pack() byte {
	if !o.Valid() {
		panic(fmt.Sprintf("offset %v does not fit in four bits per component", o))
	}
	return o.DX<<4 | o.DY
}

// UnpackOffset is the inverse of Offset.Pack.
func UnpackOffset(b byte) Offset {
	return Offset{DX: b >> 4, DY: b & 0x0f}
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d)", o.DX, o.DY)
}
