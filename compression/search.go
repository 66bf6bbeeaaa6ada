package compression

import (
	"fmt"
	"log/slog"

	"github.com/dargueta/hashpix/parallel"
	"github.com/dargueta/hashpix/raster"
)

// Status is the outcome of a compression.
type Status int

const (
	// Found means a collision-free offset table exists and the result holds a
	// usable artifact set.
	Found Status = iota
	// Infeasible means the search gave up because the tables would not be
	// smaller than the image. The color table is all background and the offset
	// table is empty.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the compressed form of an image together with some statistics
// about the search that produced it.
type Result struct {
	Status  Status
	Mask    *raster.Raster[bool]
	Colors  *raster.Raster[raster.Color]
	Offsets *raster.Raster[raster.Offset]

	// Occupied is the number of foreground pixels.
	Occupied int
	// HashSize is the side length of the color table.
	HashSize int
	// OffsetSize is the side length of the offset table in the last round
	// attempted. For an infeasible result it's the size that tripped the
	// feasibility check.
	OffsetSize int
	// Rounds is the number of sizing rounds started.
	Rounds int
	// Trials is the total number of offset tables evaluated.
	Trials int
	// Diagnostic explains why an infeasible result was returned. It's empty
	// on success.
	Diagnostic string
}

// Found returns true if the result holds a usable artifact set.
func (r *Result) Found() bool {
	return r.Status == Found
}

// Options controls the search. The zero value is ready to use.
type Options struct {
	// Strategy picks the next offset table after a collision. Defaults to
	// HottestCell.
	Strategy Strategy
	// Workers is the number of trials evaluated at the same time. Values below
	// 2 evaluate one trial at a time. Concurrent evaluation requires a
	// StatelessStrategy and produces exactly the same result as sequential
	// evaluation.
	Workers int
	// Logger receives progress messages at debug level. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Compress builds the occupancy mask of source and searches for a perfect hash
// of its foreground pixels. opts may be nil.
func Compress(source *raster.Raster[raster.Color], opts *Options) *Result {
	mask, occupied := BuildOccupancy(source)
	return Search(source, mask, occupied, opts)
}

// Search runs the perfect hash search given a mask and foreground count
// previously computed with BuildOccupancy.
func Search(
	source *raster.Raster[raster.Color],
	mask *raster.Raster[bool],
	occupied int,
	opts *Options,
) *Result {
	if !raster.SameSize(source, mask) {
		panic(fmt.Sprintf("mask is %v but source is %v", mask, source))
	}

	s := newSearch(source, mask, occupied, opts)
	return s.run()
}

type search struct {
	mask     *raster.Raster[bool]
	pixels   []pixel
	size     int
	hashSize int
	strategy Strategy
	workers  int
	logger   *slog.Logger
}

func newSearch(
	source *raster.Raster[raster.Color],
	mask *raster.Raster[bool],
	occupied int,
	opts *Options,
) *search {
	if opts == nil {
		opts = &Options{}
	}

	s := &search{
		mask:     mask,
		pixels:   collectPixels(source, mask, occupied),
		size:     source.Len(),
		hashSize: HashTableSize(occupied),
		strategy: opts.Strategy,
		workers:  opts.Workers,
		logger:   opts.Logger,
	}
	if s.strategy == nil {
		s.strategy = HottestCell{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.workers > 1 {
		stateless, ok := s.strategy.(StatelessStrategy)
		if !ok || !stateless.Stateless() {
			s.logger.Debug(
				"strategy can't be evaluated concurrently, using one worker",
				"strategy", fmt.Sprintf("%T", s.strategy))
			s.workers = 1
		}
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

func (s *search) run() *Result {
	result := &Result{
		Mask:     s.mask,
		Occupied: len(s.pixels),
		HashSize: s.hashSize,
	}

	if len(s.pixels) == 0 {
		// Nothing to hash; every trial trivially succeeds.
		result.Status = Found
		result.Colors = raster.New[raster.Color](0, 0)
		result.Offsets = raster.New[raster.Offset](0, 0)
		return result
	}

	arenas := make([]*bucketArena, s.workers)
	for i := range arenas {
		arenas[i] = newBucketArena(s.hashSize)
	}

	var pool *parallel.Pool
	if s.workers > 1 {
		pool = parallel.Start(s.workers)
		defer pool.Close()
	}

	offsetSize := OffsetTableSize(len(s.pixels))
	for round := 1; ; round++ {
		result.Rounds = round
		result.OffsetSize = offsetSize

		if !Feasible(s.size, s.hashSize, offsetSize) {
			result.Status = Infeasible
			result.Colors = raster.New[raster.Color](s.hashSize, s.hashSize)
			result.Offsets = raster.New[raster.Offset](0, 0)
			result.Diagnostic = fmt.Sprintf(
				"no perfect hash exists: %dx%d offset table with %dx%d color table"+
					" is not smaller than the %d-pixel image",
				offsetSize, offsetSize, s.hashSize, s.hashSize, s.size)
			return result
		}

		s.logger.Debug(
			"starting sizing round",
			"round", round,
			"hash_size", s.hashSize,
			"offset_size", offsetSize,
			"pixels", len(s.pixels))

		var table *raster.Raster[raster.Offset]
		var arena *bucketArena
		var trials int
		if pool == nil {
			table, arena, trials = s.runRound(round, offsetSize, arenas[0])
		} else {
			table, arena, trials = s.runRoundConcurrently(pool, round, offsetSize, arenas)
		}
		result.Trials += trials

		if table != nil {
			result.Status = Found
			result.Colors = arena.materialize()
			result.Offsets = table
			s.logger.Debug(
				"found perfect hash",
				"round", round,
				"offset_size", offsetSize,
				"trials", result.Trials)
			return result
		}

		offsetSize++
	}
}

// perturbationLimit returns the number of values each perturbation component
// can take in a round. Components are capped so every offset fits in four bits.
func perturbationLimit(offsetSize int) int {
	return min(offsetSize, raster.MaxOffset+1)
}

// runRound evaluates every perturbation of one sizing round in order. It
// returns the successful offset table and the arena holding its buckets, or a
// nil table if every trial collided.
func (s *search) runRound(
	round, offsetSize int, arena *bucketArena,
) (*raster.Raster[raster.Offset], *bucketArena, int) {
	hot, hotCount := hottestCell(s.pixels, offsetSize)
	limit := perturbationLimit(offsetSize)
	table := raster.New[raster.Offset](offsetSize, offsetSize)

	trials := 0
	for i := range limit {
		for j := range limit {
			trials++
			collisions := s.evaluate(table, arena)
			if collisions == 0 {
				return table, arena, trials
			}

			s.strategy.Propose(
				table,
				Trial{
					Round:      round,
					OffsetSize: offsetSize,
					I:          i,
					J:          j,
					Collisions: collisions,
					Hot:        hot,
					HotCount:   hotCount,
				})
		}
	}
	return nil, nil, trials
}

// runRoundConcurrently is runRound for stateless strategies. Trials are
// evaluated in batches of one per worker, and the first success in row-major
// order wins, so the output matches runRound exactly.
func (s *search) runRoundConcurrently(
	pool *parallel.Pool, round, offsetSize int, arenas []*bucketArena,
) (*raster.Raster[raster.Offset], *bucketArena, int) {
	hot, hotCount := hottestCell(s.pixels, offsetSize)
	limit := perturbationLimit(offsetSize)
	total := limit * limit

	tables := make([]*raster.Raster[raster.Offset], len(arenas))
	for i := range tables {
		tables[i] = raster.New[raster.Offset](offsetSize, offsetSize)
	}
	collisions := make([]int, len(arenas))

	for start := 0; start < total; start += len(arenas) {
		batch := min(len(arenas), total-start)

		pool.Run(batch, func(slot int) {
			k := start + slot
			table := tables[slot]
			if k == 0 {
				table.Fill(raster.Offset{})
			} else {
				// Trial k evaluates whatever the strategy proposed after trial
				// k-1 was rejected.
				s.strategy.Propose(
					table,
					Trial{
						Round:      round,
						OffsetSize: offsetSize,
						I:          (k - 1) / limit,
						J:          (k - 1) % limit,
						Hot:        hot,
						HotCount:   hotCount,
					})
			}
			collisions[slot] = s.evaluate(table, arenas[slot])
		})

		for slot := range batch {
			if collisions[slot] == 0 {
				return tables[slot].Clone(), arenas[slot], start + slot + 1
			}
		}
	}
	return nil, nil, total
}

// evaluate hashes every foreground pixel through the offset table and returns
// the number of collisions.
func (s *search) evaluate(table *raster.Raster[raster.Offset], arena *bucketArena) int {
	arena.reset()
	offsetSize := table.Width()

	collisions := 0
	for _, p := range s.pixels {
		o := table.At(p.X%offsetSize, p.Y%offsetSize)
		hx := (p.X + int(o.DX)) % s.hashSize
		hy := (p.Y + int(o.DY)) % s.hashSize
		if arena.insert(hx, hy, p.Color) {
			collisions++
		}
	}
	return collisions
}

// hottestCell returns the offset table cell through which the most pixels are
// routed, and how many. The routing only depends on the table size, not on the
// offsets it holds.
func hottestCell(pixels []pixel, offsetSize int) (Cell, int) {
	tally := make([]int, offsetSize*offsetSize)
	hot, hotCount := Cell{}, 0
	for _, p := range pixels {
		cx, cy := p.X%offsetSize, p.Y%offsetSize
		i := cy*offsetSize + cx
		tally[i]++
		if tally[i] > hotCount {
			hot, hotCount = Cell{X: cx, Y: cy}, tally[i]
		}
	}
	return hot, hotCount
}
