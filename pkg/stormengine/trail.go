package stormengine

// TrailEntry is one rendered position retained for the fading tail behind a
// storm. At is the clock value the entry was sampled at.
type TrailEntry struct {
	X, Y int
	Wind float64
	At   float64
}

// Trail is a bounded FIFO of recent rendered positions. Pushing past
// capacity evicts the oldest entry. A push whose position jumps further than
// the threshold from the previous entry clears the trail first, so a looping
// or discontinuous interpolation never paints a streak across the canvas.
type Trail struct {
	entries  []TrailEntry
	capacity int
	jumpSq   float64
}

func NewTrail(capacity int, jumpThreshold float64) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{
		entries:  make([]TrailEntry, 0, capacity),
		capacity: capacity,
		jumpSq:   jumpThreshold * jumpThreshold,
	}
}

// Push appends an entry, applying the discontinuity guard and capacity
// eviction.
func (t *Trail) Push(e TrailEntry) {
	if n := len(t.entries); n > 0 {
		last := t.entries[n-1]
		dx := float64(e.X - last.X)
		dy := float64(e.Y - last.Y)
		if dx*dx+dy*dy > t.jumpSq {
			t.entries = t.entries[:0]
		}
	}
	if len(t.entries) == t.capacity {
		copy(t.entries, t.entries[1:])
		t.entries = t.entries[:t.capacity-1]
	}
	t.entries = append(t.entries, e)
}

func (t *Trail) Len() int {
	return len(t.entries)
}

// Entries returns the trail oldest first. The slice is shared; callers must
// not mutate or retain it across pushes.
func (t *Trail) Entries() []TrailEntry {
	return t.entries
}

func (t *Trail) Clear() {
	t.entries = t.entries[:0]
}

// TrailAlpha is the opacity of entry i of n: newest entries are most opaque,
// rising linearly from the base.
func TrailAlpha(i, n int) uint8 {
	if n < 1 {
		n = 1
	}
	return uint8(80 + 175*float64(i+1)/float64(n))
}

// TrailDotRadius scales a trail dot with both wind and recency, with a floor
// of 2 px.
func TrailDotRadius(wind float64, i, n int) int {
	if n < 1 {
		n = 1
	}
	r := int(3 + (wind/150)*6*(float64(i+1)/float64(n)))
	if r < 2 {
		r = 2
	}
	return r
}
