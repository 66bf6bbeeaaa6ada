package inspect

import (
	"fmt"

	"github.com/dargueta/hashpix/raster"
)

// Visualize renders an offset table as a color image of the same size: red is
// DX*16, green is DY*16, and blue is always 255. Distinct offsets always get
// distinct colors.
//
// It panics if an offset component is out of range.
func Visualize(offsets *raster.Raster[raster.Offset]) *raster.Raster[raster.Color] {
	out := raster.New[raster.Color](offsets.Width(), offsets.Height())
	offsets.Each(func(x, y int, o raster.Offset) {
		if !o.Valid() {
			panic(fmt.Sprintf("offset %v at (%d, %d) is out of range", o, x, y))
		}
		out.Set(x, y, raster.Color{R: o.DX * 16, G: o.DY * 16, B: 255})
	})
	return out
}
