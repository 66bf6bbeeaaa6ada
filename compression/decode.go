package compression

import (
	"fmt"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
)

// Decompress rebuilds the original image from its compressed form. Pixels not
// set in mask come out as the background color.
//
// The three rasters must be consistent; use Validate first on data that came
// from outside the process. Decompress panics on an inconsistent set.
func Decompress(
	mask *raster.Raster[bool],
	colors *raster.Raster[raster.Color],
	offsets *raster.Raster[raster.Offset],
) *raster.Raster[raster.Color] {
	output := raster.New[raster.Color](mask.Width(), mask.Height())

	mask.Each(func(x, y int, set bool) {
		if !set {
			return
		}
		if offsets.Empty() || colors.Empty() {
			panic(fmt.Sprintf("pixel (%d, %d) is occupied but the tables are empty", x, y))
		}

		o := offsets.At(x%offsets.Width(), y%offsets.Height())
		c := colors.At((x+int(o.DX))%colors.Width(), (y+int(o.DY))%colors.Height())
		output.Set(x, y, c)
	})
	return output
}

// Validate checks that a mask, color table, and offset table can be passed to
// Decompress. It returns an error wrapping hashpix.ErrInvalidArgument if they
// can't, e.g. because they're the output of an infeasible compression.
func Validate(
	mask *raster.Raster[bool],
	colors *raster.Raster[raster.Color],
	offsets *raster.Raster[raster.Offset],
) error {
	occupied := mask.Count(true)
	if occupied == 0 {
		return nil
	}

	if offsets.Empty() {
		return hashpix.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"mask has %d occupied pixels but the offset table is empty;"+
					" the artifacts may be from a failed compression",
				occupied))
	}
	if colors.Empty() {
		return hashpix.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("mask has %d occupied pixels but the color table is empty", occupied))
	}
	if colors.Len() < occupied {
		return hashpix.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"color table has %d cells, too few for %d occupied pixels",
				colors.Len(), occupied))
	}
	return nil
}
