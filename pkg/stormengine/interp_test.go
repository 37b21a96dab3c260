package stormengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func twoPointTrack() *Track {
	tr := &Track{ID: "2024WP01", Name: "HAIYAN"}
	tr.Add(Observation{Time: day(1), Lat: 10, Lon: 120, Wind: 50})
	tr.Add(Observation{Time: day(2), Lat: 12, Lon: 122, Wind: 70})
	return tr
}

func storeOf(tracks ...*Track) *TrackStore {
	s := NewTrackStore()
	for _, tr := range tracks {
		s.Append(tr)
	}
	return s
}

func TestSampleIndexMode(t *testing.T) {
	tr := twoPointTrack()
	cfg := DefaultConfig()
	cfg.Speed = 1.0
	sampler := NewSampler(cfg, storeOf(tr))

	t.Run("midpoint", func(t *testing.T) {
		s, ok := sampler.Sample(tr, 0.5)
		require.True(t, ok)
		assert.InDelta(t, 11, s.Lat, 1e-9)
		assert.InDelta(t, 121, s.Lon, 1e-9)
		assert.InDelta(t, 60, s.Wind, 1e-9)
	})

	t.Run("start is exactly the first observation", func(t *testing.T) {
		s, ok := sampler.Sample(tr, 0)
		require.True(t, ok)
		assert.Equal(t, PlaybackSample{Lat: 10, Lon: 120, Wind: 50}, s)
	})

	t.Run("clamps instead of wrapping past the end", func(t *testing.T) {
		s, ok := sampler.Sample(tr, 1000)
		require.True(t, ok)
		// converges on the last observation, never teleports back to the first
		assert.InDelta(t, 12, s.Lat, 1e-3)
		assert.InDelta(t, 122, s.Lon, 1e-3)
		assert.InDelta(t, 70, s.Wind, 1e-3)
	})
}

func TestSampleIndexModeNeverIndexesPastEnd(t *testing.T) {
	tr := &Track{ID: "x", Name: "x"}
	for i := 0; i < 5; i++ {
		tr.Add(Observation{Lat: float64(i), Lon: float64(i), Wind: float64(i * 10)})
	}
	cfg := DefaultConfig()
	cfg.Speed = 1.0
	sampler := NewSampler(cfg, storeOf(tr))
	for _, clock := range []float64{0, 1.5, 3.999, 4, 7, 1e6} {
		s, ok := sampler.Sample(tr, clock)
		require.True(t, ok)
		assert.LessOrEqual(t, s.Lat, 4.0, "t=%v", clock)
		assert.GreaterOrEqual(t, s.Lat, 0.0, "t=%v", clock)
	}
}

func TestSampleSingleObservation(t *testing.T) {
	tr := &Track{ID: "solo", Name: "SOLO"}
	tr.Add(Observation{Lat: 5, Lon: 150, Wind: 35})
	sampler := NewSampler(DefaultConfig(), storeOf(tr))
	for _, clock := range []float64{0, 1, 17.3, 9999} {
		s, ok := sampler.Sample(tr, clock)
		require.True(t, ok)
		assert.Equal(t, PlaybackSample{Lat: 5, Lon: 150, Wind: 35}, s)
	}
}

func TestSampleDatetimeMode(t *testing.T) {
	tr := twoPointTrack()
	cfg := DefaultConfig()
	cfg.UseDatetime = true
	cfg.PlaybackSeconds = 10
	sampler := NewSampler(cfg, storeOf(tr))

	t.Run("half the loop maps to the span midpoint", func(t *testing.T) {
		s, ok := sampler.Sample(tr, 5)
		require.True(t, ok)
		assert.InDelta(t, 11, s.Lat, 1e-6)
		assert.InDelta(t, 121, s.Lon, 1e-6)
		assert.InDelta(t, 60, s.Wind, 1e-6)
	})

	t.Run("loop wraps via modulo", func(t *testing.T) {
		s1, _ := sampler.Sample(tr, 5)
		s2, _ := sampler.Sample(tr, 15)
		assert.Equal(t, s1, s2)
	})
}

func TestSampleDatetimeHoldsLastAfterTrackEnds(t *testing.T) {
	short := twoPointTrack() // ends day 2
	long := &Track{ID: "long", Name: "LONG"}
	long.Add(Observation{Time: day(1), Lat: 0, Lon: 0, Wind: 10})
	long.Add(Observation{Time: day(5), Lat: 20, Lon: 20, Wind: 90})

	cfg := DefaultConfig()
	cfg.UseDatetime = true
	cfg.PlaybackSeconds = 10
	sampler := NewSampler(cfg, storeOf(short, long))

	// t=9 targets day 4.6, well past the short track's final observation
	s, ok := sampler.Sample(short, 9)
	require.True(t, ok)
	assert.Equal(t, PlaybackSample{Lat: 12, Lon: 122, Wind: 70}, s)
}

func TestSampleDatetimeZeroLengthBracket(t *testing.T) {
	dup := &Track{ID: "dup", Name: "DUP"}
	dup.Add(Observation{Time: day(3), Lat: 1, Lon: 2, Wind: 30})
	dup.Add(Observation{Time: day(3), Lat: 9, Lon: 9, Wind: 90})
	span := &Track{ID: "span", Name: "SPAN"}
	span.Add(Observation{Time: day(1), Lat: 0, Lon: 0, Wind: 0})
	span.Add(Observation{Time: day(5), Lat: 0, Lon: 0, Wind: 0})

	cfg := DefaultConfig()
	cfg.UseDatetime = true
	cfg.PlaybackSeconds = 10
	sampler := NewSampler(cfg, storeOf(dup, span))

	// target lands exactly on the duplicated timestamp; fraction is 0, not NaN
	s, ok := sampler.Sample(dup, 5)
	require.True(t, ok)
	assert.Equal(t, PlaybackSample{Lat: 1, Lon: 2, Wind: 30}, s)
}

func TestSampleDatetimeFallsBackWithoutTimestamps(t *testing.T) {
	timed := twoPointTrack()
	untimed := &Track{ID: "u", Name: "U"}
	untimed.Add(Observation{Lat: 0, Lon: 0, Wind: 10})
	untimed.Add(Observation{Lat: 2, Lon: 2, Wind: 20})

	cfg := DefaultConfig()
	cfg.UseDatetime = true
	cfg.PlaybackSeconds = 10
	cfg.Speed = 1.0
	sampler := NewSampler(cfg, storeOf(timed, untimed))

	// the untimed track animates by index even in datetime mode
	s, ok := sampler.Sample(untimed, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1, s.Lat, 1e-9)
	assert.InDelta(t, 15, s.Wind, 1e-9)
}

func TestSamplerDegradesWithoutGlobalSpan(t *testing.T) {
	untimed := &Track{ID: "u", Name: "U"}
	untimed.Add(Observation{Lat: 0, Lon: 0, Wind: 10})
	untimed.Add(Observation{Lat: 2, Lon: 2, Wind: 20})

	cfg := DefaultConfig()
	cfg.UseDatetime = true
	cfg.Speed = 1.0
	sampler := NewSampler(cfg, storeOf(untimed))

	_, ok := sampler.Target(3)
	assert.False(t, ok, "no timestamps anywhere means no datetime target")

	s, ok := sampler.Sample(untimed, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1, s.Lat, 1e-9)
}
