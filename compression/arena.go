package compression

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/hashpix/raster"
)

// bucketArena is the color table under construction during a trial. It's
// allocated once per search and reset between trials.
type bucketArena struct {
	side int
	// filled marks buckets holding at least one pixel.
	filled bitmap.Bitmap
	// shared marks buckets holding more than one pixel.
	shared bitmap.Bitmap
	colors []raster.Color
}

func newBucketArena(side int) *bucketArena {
	cells := side * side
	return &bucketArena{
		side:   side,
		filled: bitmap.New(cells),
		shared: bitmap.New(cells),
		colors: make([]raster.Color, cells),
	}
}

func (a *bucketArena) reset() {
	clear(a.filled)
	clear(a.shared)
}

// insert drops a color into the bucket at (x, y) and returns true if the bucket
// was already occupied. The first color to land in a bucket is the one kept.
func (a *bucketArena) insert(x, y int, c raster.Color) bool {
	i := y*a.side + x
	if a.filled.Get(i) {
		a.shared.Set(i, true)
		return true
	}
	a.filled.Set(i, true)
	a.colors[i] = c
	return false
}

// materialize writes the contents of a collision-free arena into a new color
// table. Empty buckets are left as the background color.
func (a *bucketArena) materialize() *raster.Raster[raster.Color] {
	table := raster.New[raster.Color](a.side, a.side)
	for i := range a.colors {
		if !a.filled.Get(i) {
			continue
		}
		if a.shared.Get(i) {
			panic(
				fmt.Sprintf(
					"bucket (%d, %d) holds several pixels after a successful trial",
					i%a.side, i/a.side))
		}
		table.Set(i%a.side, i/a.side, a.colors[i])
	}
	return table
}
