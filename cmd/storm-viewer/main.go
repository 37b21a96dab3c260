package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/stormspiral/stormspiral/pkg/ingest"
	"github.com/stormspiral/stormspiral/pkg/stormengine"
)

var cli struct {
	Path string `arg:"" help:"Storm track CSV file." type:"existingfile"`

	Width  int `default:"1200" help:"Internal rendering width."`
	Height int `default:"900" help:"Internal rendering height."`
	TPS    int `name:"tps" default:"30" help:"Ticks per second (engine updates)."`

	Speed            float64 `default:"0.22" help:"Observations advanced per second in index mode."`
	UseDatetime      bool    `help:"Animate along actual observation times if available."`
	PlaybackDuration float64 `default:"60" help:"Seconds for a full datetime playback loop."`

	Jitter       float64 `default:"40" help:"Max jitter offset in pixels (applied +/-)."`
	GridSize     int     `default:"80" help:"Grid cell size in pixels for anchor spread."`
	SpreadRadius float64 `default:"30" help:"Base spread radius in pixels inside a cell."`
	Seed         int64   `default:"12345" help:"RNG seed making jitter/spread reproducible."`
	NoCenter     bool    `help:"Do not center the visualization on the dataset mean."`

	MinWind       float64 `help:"Minimum wind (kt) to display; set >0 to hide weak points."`
	TrailCap      int     `default:"90" help:"Trail length per storm."`
	JumpThreshold float64 `default:"200" help:"Pixel jump that resets a trail."`

	ZeroIsNan   bool    `name:"zero-is-nan" help:"Treat wind==0 as missing in the importer."`
	DefaultWind float64 `help:"Wind value substituted for missing readings."`

	WallClock  bool   `help:"Drive the animation from wall-clock time instead of the deterministic frame clock."`
	CaptureDir string `help:"Write every frame as a PNG into this directory."`

	WindowWidth  int  `default:"1280" help:"Initial window width (non-headless only)."`
	WindowHeight int  `default:"960" help:"Initial window height (non-headless only)."`
	Headless     bool `help:"Run without a local window (Xvfb rendering active)."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("storm-viewer"),
		kong.Description("Animated spiral visualization of storm tracks and intensity."))
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	opts := ingest.DefaultOptions()
	opts.ZeroWindIsMissing = cli.ZeroIsNan
	opts.DefaultWind = cli.DefaultWind
	store, err := ingest.LoadCSV(cli.Path, opts)
	if err != nil {
		log.Fatalf("Failed to load storm data: %v", err)
	}
	if store.Len() == 0 {
		log.Fatal("No valid storm data found")
	}
	log.Printf("Loaded %d storms", store.Len())
	for i, tr := range store.Tracks() {
		if i >= 3 {
			break
		}
		log.Printf("Storm %d: %s (ID: %s), Points: %d", i+1, tr.Name, tr.ID, len(tr.Obs))
	}

	cfg := stormengine.DefaultConfig()
	cfg.Width = cli.Width
	cfg.Height = cli.Height
	cfg.FPS = cli.TPS
	cfg.Speed = cli.Speed
	cfg.UseDatetime = cli.UseDatetime
	cfg.PlaybackSeconds = cli.PlaybackDuration
	cfg.JitterMagnitude = cli.Jitter
	cfg.GridCellSize = cli.GridSize
	cfg.SpreadRadius = cli.SpreadRadius
	cfg.Seed = cli.Seed
	cfg.Recenter = !cli.NoCenter
	cfg.MinWind = cli.MinWind
	cfg.TrailCapacity = cli.TrailCap
	cfg.JumpThreshold = cli.JumpThreshold
	cfg.DeterministicClock = !cli.WallClock

	engine := stormengine.NewEngine(cfg, store)
	engine.FrameCaptureDir = cli.CaptureDir

	ebiten.SetTPS(cli.TPS)
	if cli.Headless {
		log.Println("Running in HEADLESS mode (Rendering active).")
	} else {
		ebiten.SetWindowSize(cli.WindowWidth, cli.WindowHeight)
		ebiten.SetWindowTitle("Storm Track Visualization - Press ESC to exit")
	}
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal(err)
	}
}
