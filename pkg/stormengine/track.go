// Package stormengine renders animated storm tracks: each storm is a
// wind-colored spiral moving along its recorded observations, trailed by a
// fading history of recent positions.
package stormengine

import "time"

// Observation is one recorded sample of a storm: position, wind speed in
// knots and an optional timestamp. A zero Time means the source row had no
// usable timestamp.
type Observation struct {
	Time time.Time
	Lat  float64
	Lon  float64
	Wind float64
}

// HasTime reports whether the observation carries a timestamp.
func (o Observation) HasTime() bool {
	return !o.Time.IsZero()
}

// Track is the full recorded path of one storm. Observations keep their
// insertion order; the engine assumes that order is chronological and never
// re-sorts. Datetime playback requires callers to feed rows in time order.
type Track struct {
	ID   string
	Name string
	Obs  []Observation

	timed []int // indices of observations with timestamps, built lazily
}

// Add appends one observation.
func (t *Track) Add(o Observation) {
	t.Obs = append(t.Obs, o)
	t.timed = nil
}

// Anchor returns the mean position of all observations. It is only used to
// decide spread grouping, never as a rendered position.
func (t *Track) Anchor() (lat, lon float64) {
	if len(t.Obs) == 0 {
		return 0, 0
	}
	for _, o := range t.Obs {
		lat += o.Lat
		lon += o.Lon
	}
	n := float64(len(t.Obs))
	return lat / n, lon / n
}

// TimedObservations returns the indices of observations that carry a
// timestamp, in track order.
func (t *Track) TimedObservations() []int {
	if t.timed == nil {
		t.timed = make([]int, 0, len(t.Obs))
		for i, o := range t.Obs {
			if o.HasTime() {
				t.timed = append(t.timed, i)
			}
		}
	}
	return t.timed
}

// TrackStore owns every track for a run. Iteration order is insertion order,
// so per-frame processing and draw layering are reproducible.
type TrackStore struct {
	tracks []*Track
	byID   map[string]*Track
}

func NewTrackStore() *TrackStore {
	return &TrackStore{byID: make(map[string]*Track)}
}

// Append adds a track to the store. Empty tracks are discarded, so every
// stored track has at least one observation.
func (s *TrackStore) Append(t *Track) {
	if t == nil || len(t.Obs) == 0 {
		return
	}
	if _, ok := s.byID[t.ID]; ok {
		return
	}
	s.tracks = append(s.tracks, t)
	s.byID[t.ID] = t
}

// Get returns the track with the given id, or nil.
func (s *TrackStore) Get(id string) *Track {
	return s.byID[id]
}

// Tracks returns all tracks in insertion order. The slice is shared; callers
// must not mutate it.
func (s *TrackStore) Tracks() []*Track {
	return s.tracks
}

func (s *TrackStore) Len() int {
	return len(s.tracks)
}

// TimeSpan returns the earliest and latest timestamps across all tracks.
// ok is false when no observation carries a timestamp.
func (s *TrackStore) TimeSpan() (start, end time.Time, ok bool) {
	for _, t := range s.tracks {
		for _, o := range t.Obs {
			if !o.HasTime() {
				continue
			}
			if !ok || o.Time.Before(start) {
				start = o.Time
			}
			if !ok || o.Time.After(end) {
				end = o.Time
			}
			ok = true
		}
	}
	return start, end, ok
}
