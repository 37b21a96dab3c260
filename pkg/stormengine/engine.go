package stormengine

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Config is the full tuning surface of the engine. Zero values are not
// useful; start from DefaultConfig.
type Config struct {
	Width, Height int
	FPS           int

	Speed           float64 // index-mode observations advanced per second
	UseDatetime     bool
	PlaybackSeconds float64 // datetime-mode loop length

	JitterMagnitude float64
	GridCellSize    int
	SpreadRadius    float64
	Recenter        bool
	Seed            int64

	MinWind       float64 // samples below this wind are not drawn
	TrailCapacity int
	JumpThreshold float64 // pixels; larger jumps reset the trail

	DeterministicClock bool
}

// DefaultConfig mirrors the tuning the visualization ships with.
func DefaultConfig() Config {
	return Config{
		Width:              1200,
		Height:             900,
		FPS:                30,
		Speed:              0.22,
		PlaybackSeconds:    60,
		JitterMagnitude:    40,
		GridCellSize:       80,
		SpreadRadius:       30,
		Recenter:           true,
		Seed:               12345,
		TrailCapacity:      90,
		JumpThreshold:      200,
		DeterministicClock: true,
	}
}

// State is the frame driver's lifecycle. Stopped is terminal.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

const (
	spiralSteps    = 32
	spiralCoils    = 3
	spiralSpin     = 0.9 // radians per playback second
	spiralStroke   = 4
	maxSpiralRad   = 160
	labelNudge     = 10
	statusInterval = 1.0 // playback seconds between log lines
)

// Engine drives the animation: it owns the trails and the glow cache, pulls
// one sample per track per tick, and emits the frame's draw instructions.
// It implements ebiten.Game but Advance is independent of any renderer.
type Engine struct {
	cfg     Config
	store   *TrackStore
	layout  *Layout
	sampler *Sampler
	glow    *GlowCache
	trails  []*Trail

	clock PlaybackClock
	state State
	frame *Frame

	frameCount int
	lastStatus float64

	// render-side resources, created lazily on first Draw
	bg         *ebiten.Image
	glowImages map[GlowKey]*ebiten.Image
	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	// FrameCaptureDir, when set, writes every drawn frame as a PNG there.
	FrameCaptureDir string
	// MaxFrames stops the run after that many ticks; 0 means run forever.
	MaxFrames int
}

// NewEngine wires the store into a ready-to-run engine. The layout pass runs
// here, once, so offsets are fixed before the first frame.
func NewEngine(cfg Config, store *TrackStore) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	e := &Engine{
		cfg:        cfg,
		store:      store,
		layout:     ComputeLayout(store, cfg),
		sampler:    NewSampler(cfg, store),
		glow:       NewGlowCache(),
		trails:     make([]*Trail, store.Len()),
		glowImages: make(map[GlowKey]*ebiten.Image),
		fontSource: s,
		monoSource: m,
	}
	for i := range e.trails {
		e.trails[i] = NewTrail(cfg.TrailCapacity, cfg.JumpThreshold)
	}
	if c := e.layout.Center(); cfg.Recenter {
		log.Printf("Centering visualization: pixel offset (%d, %d)", c.X, c.Y)
	}
	return e
}

// SetClock overrides the playback clock; pass a wall clock built on a
// clockwork fake to freeze time in tests.
func (e *Engine) SetClock(c PlaybackClock) {
	e.clock = c
}

// Start transitions Idle -> Running and picks the configured clock if none
// was injected.
func (e *Engine) Start() {
	if e.state != StateIdle {
		return
	}
	if e.clock == nil {
		if e.cfg.DeterministicClock {
			e.clock = NewFrameClock(e.cfg.FPS)
		} else {
			e.clock = NewWallClock(clockwork.NewRealClock())
		}
	}
	e.state = StateRunning
}

// Stop transitions to the terminal Stopped state.
func (e *Engine) Stop() {
	e.state = StateStopped
}

func (e *Engine) State() State {
	return e.state
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Glow exposes the render resource cache, mostly for inspection.
func (e *Engine) Glow() *GlowCache {
	return e.glow
}

// Trail returns the trail of the i-th track in store order.
func (e *Engine) Trail(i int) *Trail {
	return e.trails[i]
}

// Frame returns the draw instructions of the most recent tick.
func (e *Engine) Frame() *Frame {
	return e.frame
}

// Advance samples every track at clock value t, updates trails and the glow
// cache, and returns the frame's draw instructions. Tracks are processed in
// store order so draw layering is reproducible.
func (e *Engine) Advance(t float64) *Frame {
	fr := &Frame{Time: t}
	for i, tr := range e.store.Tracks() {
		s, ok := e.sampler.Sample(tr, t)
		if !ok {
			continue
		}
		if e.cfg.MinWind > 0 && s.Wind < e.cfg.MinWind {
			continue
		}
		px, py := Project(s.Lat, s.Lon, e.cfg.Width, e.cfg.Height)
		off := e.layout.Offset(i)
		x := int(px) + off.X
		y := int(py) + off.Y
		if x < 0 || x >= e.cfg.Width || y < 0 || y >= e.cfg.Height {
			continue
		}
		fr.Visible++

		trail := e.trails[i]
		trail.Push(TrailEntry{X: x, Y: y, Wind: s.Wind, At: t})
		entries := trail.Entries()
		n := len(entries)
		for j, en := range entries {
			alpha := TrailAlpha(j, n)
			radius := TrailDotRadius(en.Wind, j, n)
			_, key := e.glow.Get(float64(radius), float64(alpha)/255)
			fr.Dots = append(fr.Dots, TrailDot{
				X:      en.X,
				Y:      en.Y,
				Radius: radius,
				Color:  WindColor(en.Wind),
				Alpha:  alpha,
				Key:    key,
			})
		}

		radius := 16 + (s.Wind/100)*120
		if radius > maxSpiralRad {
			radius = maxSpiralRad
		}
		fr.Spirals = append(fr.Spirals, Spiral{
			Points: SpiralPoints(float64(x), float64(y), radius, t*spiralSpin, spiralSteps, spiralCoils),
			Color:  WindColor(s.Wind),
		})
		fr.Labels = append(fr.Labels, Label{
			X:    x + labelNudge,
			Y:    y + labelNudge,
			Text: fmt.Sprintf("%s (%d kt)", tr.Name, int(s.Wind)),
		})
	}
	return fr
}

// Update implements ebiten.Game. One tick: advance the clock, rebuild the
// frame, honor the stop signal.
func (e *Engine) Update() error {
	if e.state == StateIdle {
		e.Start()
	}
	if e.state == StateStopped {
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		e.Stop()
		return ebiten.Termination
	}
	// stop one tick after the budget fills: returning an error skips Draw,
	// so the final budgeted frame must complete its draw first
	if e.MaxFrames > 0 && e.frameCount >= e.MaxFrames {
		e.Stop()
		return ebiten.Termination
	}

	// sample before ticking so the first frame renders at t=0
	now := e.clock.Now()
	e.frame = e.Advance(now)
	e.frameCount++
	e.clock.Tick()

	if now-e.lastStatus >= statusInterval {
		log.Printf("Time: %.1fs, Visible storms: %d", now, e.frame.Visible)
		e.lastStatus = now
	}
	return nil
}

// Draw implements ebiten.Game: basemap, trail dots, spirals, labels, HUD.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.bg == nil {
		if err := e.generateBackground(); err != nil {
			log.Printf("Basemap generation failed: %v", err)
			e.bg = ebiten.NewImage(e.cfg.Width, e.cfg.Height)
			e.bg.Fill(backgroundColor)
		}
	}
	screen.DrawImage(e.bg, nil)
	if e.frame == nil {
		return
	}
	e.drawFrame(screen, e.frame)
	e.drawStatus(screen, e.frame)
	if e.FrameCaptureDir != "" {
		e.captureFrame(screen, e.frameCount)
	}
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(w, h int) (int, int) {
	return e.cfg.Width, e.cfg.Height
}
