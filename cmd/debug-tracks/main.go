// debug-tracks inspects a storm CSV without opening a window: dataset
// totals, time span, and the grid-cell occupancy the layout pass will spread
// against. Useful for tuning --grid-size and --spread-radius.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/stormspiral/stormspiral/pkg/ingest"
	"github.com/stormspiral/stormspiral/pkg/stormengine"
)

var cli struct {
	Path string `arg:"" help:"Storm track CSV file." type:"existingfile"`

	Width        int     `default:"1200" help:"Canvas width assumed by the layout."`
	Height       int     `default:"900" help:"Canvas height assumed by the layout."`
	GridSize     int     `default:"80" help:"Grid cell size in pixels."`
	SpreadRadius float64 `default:"30" help:"Base spread radius in pixels."`
	Seed         int64   `default:"12345" help:"RNG seed for the layout pass."`
	Density      int     `default:"6" help:"Only list cells holding at least this many storms."`
	ZeroIsNan    bool    `name:"zero-is-nan" help:"Treat wind==0 as missing in the importer."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("debug-tracks"),
		kong.Description("Dataset and layout inspection for storm-track CSVs."))
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	opts := ingest.DefaultOptions()
	opts.ZeroWindIsMissing = cli.ZeroIsNan
	store, err := ingest.LoadCSV(cli.Path, opts)
	if err != nil {
		log.Fatalf("Failed to load storm data: %v", err)
	}

	obs := 0
	for _, tr := range store.Tracks() {
		obs += len(tr.Obs)
	}
	fmt.Printf("Tracks:       %d\n", store.Len())
	fmt.Printf("Observations: %d\n", obs)
	if start, end, ok := store.TimeSpan(); ok {
		fmt.Printf("Time span:    %s to %s\n", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Time span:    no timestamps (index-mode playback only)")
	}

	cfg := stormengine.DefaultConfig()
	cfg.Width = cli.Width
	cfg.Height = cli.Height
	cfg.GridCellSize = cli.GridSize
	cfg.SpreadRadius = cli.SpreadRadius
	cfg.Seed = cli.Seed
	layout := stormengine.ComputeLayout(store, cfg)

	occupancy := layout.CellOccupancy()
	histogram := map[int]int{}
	type crowded struct {
		cell  stormengine.Cell
		count int
	}
	var hot []crowded
	for cell, n := range occupancy {
		histogram[n]++
		if n >= cli.Density {
			hot = append(hot, crowded{cell, n})
		}
	}

	fmt.Printf("\nGrid cells occupied (%dpx cells): %d\n", cli.GridSize, len(occupancy))
	var sizes []int
	for n := range histogram {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	for _, n := range sizes {
		fmt.Printf("  %3d storm(s)/cell: %d cells\n", n, histogram[n])
	}

	if len(hot) == 0 {
		return
	}
	sort.Slice(hot, func(i, j int) bool {
		if hot[i].count != hot[j].count {
			return hot[i].count > hot[j].count
		}
		if hot[i].cell.Col != hot[j].cell.Col {
			return hot[i].cell.Col < hot[j].cell.Col
		}
		return hot[i].cell.Row < hot[j].cell.Row
	})
	fmt.Printf("\nCrowded cells (>= %d storms):\n", cli.Density)
	for _, h := range hot {
		fmt.Printf("  cell (%d, %d): %d storms around (%d, %d)px\n",
			h.cell.Col, h.cell.Row, h.count,
			h.cell.Col*cli.GridSize+cli.GridSize/2,
			h.cell.Row*cli.GridSize+cli.GridSize/2)
	}
}
