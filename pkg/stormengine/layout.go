package stormengine

import (
	"math"
	"math/rand"
)

// Offset is a static per-track pixel delta applied after projection. It is
// the sum of seeded jitter, grid-cell spread and the dataset recentering
// shift, computed once before the animation starts.
type Offset struct {
	X, Y int
}

// Cell addresses one grid bucket in anchor space.
type Cell struct {
	Col, Row int
}

// Layout holds the per-track offsets as a side table indexed by the store's
// track order. Given the same seed and dataset it is bit-for-bit identical
// across runs.
type Layout struct {
	offsets []Offset
	cells   map[Cell][]int
	order   []Cell
	center  Offset
}

// ComputeLayout runs the one-shot layout pass:
//
//  1. per-track jitter drawn from a seeded generator,
//  2. grid-cell ring spread so co-located storms de-stack,
//  3. a uniform shift that moves the dataset centroid to canvas center.
func ComputeLayout(store *TrackStore, cfg Config) *Layout {
	tracks := store.Tracks()
	l := &Layout{
		offsets: make([]Offset, len(tracks)),
		cells:   make(map[Cell][]int),
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	// jitter first: one (dx, dy) pair per track, in store order, so the
	// draw sequence from the generator is stable
	j := cfg.JitterMagnitude
	for i := range tracks {
		dx := rng.Float64()*2*j - j
		dy := rng.Float64()*2*j - j
		l.offsets[i] = Offset{X: int(dx), Y: int(dy)}
	}

	// bucket anchors into grid cells, remembering first-seen cell order so
	// the spread pass consumes the generator deterministically
	for i, tr := range tracks {
		lat, lon := tr.Anchor()
		ax, ay := Project(lat, lon, cfg.Width, cfg.Height)
		cell := Cell{Col: floorDiv(int(ax), cfg.GridCellSize), Row: floorDiv(int(ay), cfg.GridCellSize)}
		if _, seen := l.cells[cell]; !seen {
			l.order = append(l.order, cell)
		}
		l.cells[cell] = append(l.cells[cell], i)
	}
	for _, cell := range l.order {
		members := l.cells[cell]
		n := len(members)
		if n == 1 {
			continue
		}
		for i, idx := range members {
			// concentric rings of up to 8 slots each
			ring := 1 + i/8
			slots := n - (ring-1)*8
			if slots > 8 {
				slots = 8
			}
			angle := 2*math.Pi*float64(i%8)/float64(slots) + (rng.Float64()*0.24 - 0.12)
			r := cfg.SpreadRadius * float64(ring)
			l.offsets[idx].X += int(math.Round(math.Cos(angle) * r))
			l.offsets[idx].Y += int(math.Round(math.Sin(angle) * r))
		}
	}

	if cfg.Recenter {
		l.center = recenterOffset(tracks, cfg)
		for i := range l.offsets {
			l.offsets[i].X += l.center.X
			l.offsets[i].Y += l.center.Y
		}
	}
	return l
}

// Offset returns the combined pixel delta for the i-th track in store order.
func (l *Layout) Offset(i int) Offset {
	if i < 0 || i >= len(l.offsets) {
		return Offset{}
	}
	return l.offsets[i]
}

// Center returns the uniform recentering component alone, as applied to the
// basemap so land stays aligned with the shifted storms.
func (l *Layout) Center() Offset {
	return l.center
}

// CellOccupancy returns how many tracks anchor inside each grid cell.
func (l *Layout) CellOccupancy() map[Cell]int {
	out := make(map[Cell]int, len(l.cells))
	for c, members := range l.cells {
		out[c] = len(members)
	}
	return out
}

func recenterOffset(tracks []*Track, cfg Config) Offset {
	var sumLat, sumLon float64
	var n int
	for _, tr := range tracks {
		for _, o := range tr.Obs {
			sumLat += o.Lat
			sumLon += o.Lon
			n++
		}
	}
	if n == 0 {
		return Offset{}
	}
	mx, my := Project(sumLat/float64(n), sumLon/float64(n), cfg.Width, cfg.Height)
	return Offset{X: cfg.Width/2 - int(mx), Y: cfg.Height/2 - int(my)}
}

// floorDiv is integer division rounding toward negative infinity, so
// anchors left of or above the canvas still bucket consistently.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
