package stormengine

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JitterMagnitude = 0
	cfg.Recenter = false
	return cfg
}

func TestEngineStateTransitions(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	require.Equal(t, StateIdle, e.State())

	e.Start()
	assert.Equal(t, StateRunning, e.State())

	e.Stop()
	assert.Equal(t, StateStopped, e.State())

	// Stopped is terminal
	e.Start()
	assert.Equal(t, StateStopped, e.State())
}

func TestAdvanceMinWindFilter(t *testing.T) {
	weak := &Track{ID: "w", Name: "WEAK"}
	weak.Add(Observation{Lat: 10, Lon: 120, Wind: 30})
	strong := &Track{ID: "s", Name: "STRONG"}
	strong.Add(Observation{Lat: 20, Lon: 130, Wind: 45})

	cfg := testConfig()
	cfg.MinWind = 40
	cfg.SpreadRadius = 0
	e := NewEngine(cfg, storeOf(weak, strong))

	fr := e.Advance(0)
	require.Equal(t, 1, fr.Visible)
	require.Len(t, fr.Labels, 1)
	assert.Contains(t, fr.Labels[0].Text, "STRONG")

	// the filtered storm leaves no trace: no trail entry, no draw ops
	assert.Equal(t, 0, e.Trail(0).Len())
	assert.Equal(t, 1, e.Trail(1).Len())
}

func TestAdvanceGrowsTrails(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	for i := 0; i < 5; i++ {
		e.Advance(float64(i) * 0.1)
	}
	assert.Equal(t, 5, e.Trail(0).Len())
}

func TestAdvanceFrameContents(t *testing.T) {
	cfg := testConfig()
	cfg.Speed = 1.0
	e := NewEngine(cfg, storeOf(twoPointTrack()))
	fr := e.Advance(0.5)

	require.Equal(t, 1, fr.Visible)
	require.Len(t, fr.Spirals, 1)
	assert.Len(t, fr.Spirals[0].Points, spiralSteps)
	require.Len(t, fr.Dots, 1)
	assert.Equal(t, uint8(255), fr.Dots[0].Alpha, "sole entry is fully opaque")
	require.Len(t, fr.Labels, 1)
	assert.Equal(t, "HAIYAN (60 kt)", fr.Labels[0].Text)
}

func TestAdvanceDeterministicAcrossEngines(t *testing.T) {
	build := func() *Frame {
		e := NewEngine(DefaultConfig(), storeOf(twoPointTrack(), trackAt("b", 10, 120)))
		var fr *Frame
		for i := 0; i <= 10; i++ {
			fr = e.Advance(float64(i) / 30)
		}
		return fr
	}
	a, b := build(), build()
	assert.Equal(t, a.Dots, b.Dots)
	assert.Equal(t, a.Spirals, b.Spirals)
	assert.Equal(t, a.Labels, b.Labels)
}

func TestAdvancePopulatesGlowCache(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	require.Equal(t, 0, e.Glow().Len())
	fr := e.Advance(0)
	require.NotEmpty(t, fr.Dots)
	assert.Greater(t, e.Glow().Len(), 0)
	assert.NotNil(t, e.Glow().Image(fr.Dots[0].Key))
}

func TestUpdateAdvancesExactlyMaxFrames(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	e.MaxFrames = 3

	// every nil return gets a Draw from the game loop; the budgeted final
	// frame must still be one of them
	drawable := 0
	for i := 0; i < 10; i++ {
		if err := e.Update(); err != nil {
			require.ErrorIs(t, err, ebiten.Termination)
			break
		}
		drawable++
	}
	assert.Equal(t, 3, drawable, "all budgeted frames reach Draw")
	assert.Equal(t, StateStopped, e.State())
	assert.ErrorIs(t, e.Update(), ebiten.Termination, "stopped engines signal termination")
}

func TestUpdateSingleFrameBudget(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	e.MaxFrames = 1
	require.NoError(t, e.Update(), "the only frame still draws")
	require.NotNil(t, e.Frame())
	assert.ErrorIs(t, e.Update(), ebiten.Termination)
}

func TestUpdateFirstFrameAtTimeZero(t *testing.T) {
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	require.NoError(t, e.Update())
	require.NotNil(t, e.Frame())
	assert.Equal(t, 0.0, e.Frame().Time, "deterministic playback starts at t=0")

	require.NoError(t, e.Update())
	assert.InDelta(t, 1.0/30, e.Frame().Time, 1e-9)
}

func TestUpdateWithFakeWallClock(t *testing.T) {
	fake := clockwork.NewFakeClock()
	e := NewEngine(testConfig(), storeOf(twoPointTrack()))
	e.SetClock(NewWallClock(fake))

	require.NoError(t, e.Update())
	require.NotNil(t, e.Frame())
	assert.Equal(t, 0.0, e.Frame().Time)

	fake.Advance(500 * time.Millisecond)
	require.NoError(t, e.Update())
	assert.InDelta(t, 0.5, e.Frame().Time, 1e-9)
}
