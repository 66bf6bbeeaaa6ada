package compression

import "github.com/dargueta/hashpix/raster"

// BuildOccupancy returns a mask the size of source that is true wherever the
// source pixel isn't the background color, along with the number of true
// pixels.
func BuildOccupancy(source *raster.Raster[raster.Color]) (*raster.Raster[bool], int) {
	mask := raster.New[bool](source.Width(), source.Height())
	occupied := 0
	source.Each(func(x, y int, c raster.Color) {
		if !c.IsBackground() {
			mask.Set(x, y, true)
			occupied++
		}
	})
	return mask, occupied
}

// pixel is a foreground pixel of the source image.
type pixel struct {
	X, Y  int
	Color raster.Color
}

// collectPixels returns the foreground pixels of source in row-major order.
func collectPixels(source *raster.Raster[raster.Color], mask *raster.Raster[bool], occupied int) []pixel {
	pixels := make([]pixel, 0, occupied)
	mask.Each(func(x, y int, set bool) {
		if set {
			pixels = append(pixels, pixel{X: x, Y: y, Color: source.At(x, y)})
		}
	})
	return pixels
}
