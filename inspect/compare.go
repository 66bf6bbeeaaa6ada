package inspect

import (
	"fmt"
	"io"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
	"github.com/gocarina/gocsv"
)

// Comparison is the pixel-by-pixel difference between two images of the same
// size.
type Comparison struct {
	// Matches is true wherever both images have the same color.
	Matches *raster.Raster[bool]
	// Mismatched is the number of pixels where the images differ.
	Mismatched int

	left, right *raster.Raster[raster.Color]
}

// Mismatch is one differing pixel. The struct tags name the CSV columns
// written by WriteReport.
type Mismatch struct {
	X      int   `csv:"x"`
	Y      int   `csv:"y"`
	LeftR  uint8 `csv:"left_r"`
	LeftG  uint8 `csv:"left_g"`
	LeftB  uint8 `csv:"left_b"`
	RightR uint8 `csv:"right_r"`
	RightG uint8 `csv:"right_g"`
	RightB uint8 `csv:"right_b"`
}

// Compare checks two images pixel by pixel. If they don't have the same
// dimensions it returns an error wrapping hashpix.ErrDimensionMismatch and no
// comparison.
func Compare(left, right *raster.Raster[raster.Color]) (*Comparison, error) {
	if !raster.SameSize(left, right) {
		return nil, hashpix.ErrDimensionMismatch.WithMessage(
			fmt.Sprintf("%dx%d vs %dx%d",
				left.Width(), left.Height(), right.Width(), right.Height()))
	}

	matches := raster.New[bool](left.Width(), left.Height())
	mismatched := 0
	left.Each(func(x, y int, c raster.Color) {
		if c == right.At(x, y) {
			matches.Set(x, y, true)
		} else {
			mismatched++
		}
	})

	return &Comparison{
		Matches:    matches,
		Mismatched: mismatched,
		left:       left,
		right:      right,
	}, nil
}

// Identical returns true if every pixel matched.
func (c *Comparison) Identical() bool {
	return c.Mismatched == 0
}

// Mismatches lists the differing pixels in row-major order.
func (c *Comparison) Mismatches() []Mismatch {
	rows := make([]Mismatch, 0, c.Mismatched)
	c.Matches.Each(func(x, y int, matched bool) {
		if matched {
			return
		}
		l := c.left.At(x, y)
		r := c.right.At(x, y)
		rows = append(rows, Mismatch{
			X:      x,
			Y:      y,
			LeftR:  l.R,
			LeftG:  l.G,
			LeftB:  l.B,
			RightR: r.R,
			RightG: r.G,
			RightB: r.B,
		})
	})
	return rows
}

func (c *Comparison) String() string {
	if c.Identical() {
		return fmt.Sprintf("%dx%d images are identical", c.Matches.Width(), c.Matches.Height())
	}
	return fmt.Sprintf(
		"%d of %d pixels differ", c.Mismatched, c.Matches.Len())
}

// WriteReport writes the mismatching pixels of c to w as CSV with a header row.
func WriteReport(w io.Writer, c *Comparison) error {
	rows := c.Mismatches()
	if err := gocsv.Marshal(&rows, w); err != nil {
		return hashpix.ErrIOFailed.WithMessage("writing mismatch report").Wrap(err)
	}
	return nil
}
