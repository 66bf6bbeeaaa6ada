package compression

import "github.com/dargueta/hashpix/raster"

// Cell identifies a cell of the offset table.
type Cell struct {
	X, Y int
}

// Trial describes one pass over the foreground pixels with a particular offset
// table.
type Trial struct {
	// Round is the 1-based sizing round. Each round uses a larger offset table.
	Round int
	// OffsetSize is the side length of the offset table during this round.
	OffsetSize int
	// I and J are the perturbation this trial was evaluated under.
	I, J int
	// Collisions is the number of pixels that landed in an already occupied
	// color table cell. It's always 0 for strategies evaluated concurrently.
	Collisions int
	// Hot is the offset table cell that routes the most foreground pixels. Ties
	// go to the cell that reached the maximum first in row-major pixel order.
	Hot Cell
	// HotCount is the number of pixels routed through Hot.
	HotCount int
}

// Strategy decides which offset table to evaluate after a trial collides.
type Strategy interface {
	// Propose rewrites table with the next assignment to evaluate, given the
	// trial that was just rejected. Implementations must set every cell and
	// keep every component within [0, raster.MaxOffset].
	Propose(table *raster.Raster[raster.Offset], rejected Trial)
}

// StatelessStrategy is implemented by strategies whose proposals depend only
// on the rejected trial's round, perturbation, and hot cell, and never on the
// previous contents of the table or on the collision count. The search may
// evaluate several trials of such a strategy concurrently.
type StatelessStrategy interface {
	Strategy
	Stateless() bool
}

// HottestCell is the default strategy. It sets every offset to the rejected
// perturbation (i, j), except the hot cell, which goes back to (0, 0). This
// keeps the densest region in place while shifting the rest of the image.
type HottestCell struct{}

var _ StatelessStrategy = HottestCell{}

func (HottestCell) Propose(table *raster.Raster[raster.Offset], rejected Trial) {
	table.Fill(raster.Offset{DX: uint8(rejected.I), DY: uint8(rejected.J)})
	table.Set(rejected.Hot.X, rejected.Hot.Y, raster.Offset{})
}

func (HottestCell) Stateless() bool {
	return true
}
