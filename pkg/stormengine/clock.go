package stormengine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// PlaybackClock supplies the animation clock in seconds since playback
// start. Tick is called once per frame before sampling.
type PlaybackClock interface {
	Now() float64
	Tick()
}

// frameClock advances a fixed step per tick, independent of real time, so a
// run at a given FPS and seed reproduces the exact same frames.
type frameClock struct {
	frames int
	step   float64
}

// NewFrameClock returns a deterministic clock stepping 1/fps per tick.
func NewFrameClock(fps int) PlaybackClock {
	if fps <= 0 {
		fps = 30
	}
	return &frameClock{step: 1 / float64(fps)}
}

func (c *frameClock) Now() float64 {
	return float64(c.frames) * c.step
}

func (c *frameClock) Tick() {
	c.frames++
}

// wallClock measures elapsed real time through a clockwork clock; tests
// inject a fake and advance it explicitly.
type wallClock struct {
	clock clockwork.Clock
	start time.Time
}

// NewWallClock returns a clock anchored at the current time of c. A nil c
// uses the real clock.
func NewWallClock(c clockwork.Clock) PlaybackClock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &wallClock{clock: c, start: c.Now()}
}

func (c *wallClock) Now() float64 {
	return c.clock.Since(c.start).Seconds()
}

func (c *wallClock) Tick() {}
