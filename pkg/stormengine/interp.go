package stormengine

import (
	"math"
	"time"
)

// PlaybackSample is a transient interpolated position; it is derived per
// frame and never stored.
type PlaybackSample struct {
	Lat  float64
	Lon  float64
	Wind float64
}

// Sampler turns a playback clock value into a continuous position along a
// track. Two mutually exclusive modes: fractional-index advance (default)
// and datetime playback, which maps the clock into the dataset's global
// timestamp span. Tracks without timestamps always use index mode.
type Sampler struct {
	speed           float64
	useDatetime     bool
	playbackSeconds float64

	spanStart time.Time
	spanEnd   time.Time
	hasSpan   bool
}

// NewSampler builds a sampler for the given store. The global time span is
// captured once; datetime mode silently degrades to index mode when the
// dataset has no timestamps or a zero-length span.
func NewSampler(cfg Config, store *TrackStore) *Sampler {
	s := &Sampler{
		speed:           cfg.Speed,
		useDatetime:     cfg.UseDatetime,
		playbackSeconds: cfg.PlaybackSeconds,
	}
	s.spanStart, s.spanEnd, s.hasSpan = store.TimeSpan()
	return s
}

// Span returns the dataset's global timestamp span, if any.
func (s *Sampler) Span() (start, end time.Time, ok bool) {
	return s.spanStart, s.spanEnd, s.hasSpan
}

// Target returns the dataset timestamp the clock value t maps to in
// datetime mode. ok is false when datetime playback is not in effect.
func (s *Sampler) Target(t float64) (time.Time, bool) {
	if !s.useDatetime || !s.hasSpan || s.playbackSeconds <= 0 {
		return time.Time{}, false
	}
	span := s.spanEnd.Sub(s.spanStart)
	if span <= 0 {
		return time.Time{}, false
	}
	frac := math.Mod(t, s.playbackSeconds) / s.playbackSeconds
	return s.spanStart.Add(time.Duration(frac * float64(span))), true
}

// Sample produces the interpolated position of tr at clock value t.
// ok is false only for empty tracks, which the store never holds.
func (s *Sampler) Sample(tr *Track, t float64) (PlaybackSample, bool) {
	if len(tr.Obs) == 0 {
		return PlaybackSample{}, false
	}
	if target, ok := s.Target(t); ok {
		if timed := tr.TimedObservations(); len(timed) > 0 {
			return s.sampleDatetime(tr, timed, target), true
		}
		// no usable timestamps on this track; fall through to index mode
	}
	return s.sampleIndex(tr, t), true
}

func (s *Sampler) sampleIndex(tr *Track, t float64) PlaybackSample {
	obs := tr.Obs
	n := len(obs)
	if n == 1 {
		return sampleOf(obs[0])
	}
	f := t * s.speed
	// clamp below n-1 so the head never wraps from the last point back to
	// the first in a single frame
	maxF := float64(n-1) - 1e-6
	if f > maxF {
		f = maxF
	}
	if f < 0 {
		f = 0
	}
	i0 := int(math.Floor(f))
	frac := f - float64(i0)
	i1 := i0 + 1
	if i1 > n-1 {
		i1 = n - 1
	}
	return lerpSample(obs[i0], obs[i1], frac)
}

func (s *Sampler) sampleDatetime(tr *Track, timed []int, target time.Time) PlaybackSample {
	prev := tr.Obs[timed[0]]
	for _, idx := range timed[1:] {
		cur := tr.Obs[idx]
		if cur.Time.Before(target) {
			prev = cur
			continue
		}
		total := cur.Time.Sub(prev.Time).Seconds()
		if total <= 0 {
			return sampleOf(prev)
		}
		alpha := target.Sub(prev.Time).Seconds() / total
		if alpha < 0 {
			alpha = 0
		}
		return lerpSample(prev, cur, alpha)
	}
	// target is past the last timestamp; hold the final position
	return sampleOf(tr.Obs[timed[len(timed)-1]])
}

func sampleOf(o Observation) PlaybackSample {
	return PlaybackSample{Lat: o.Lat, Lon: o.Lon, Wind: o.Wind}
}

func lerpSample(a, b Observation, frac float64) PlaybackSample {
	return PlaybackSample{
		Lat:  a.Lat + (b.Lat-a.Lat)*frac,
		Lon:  a.Lon + (b.Lon-a.Lon)*frac,
		Wind: a.Wind + (b.Wind-a.Wind)*frac,
	}
}
