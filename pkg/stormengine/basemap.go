package stormengine

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	geojson "github.com/paulmach/go.geojson"
)

var (
	backgroundColor = color.RGBA{10, 18, 28, 255}
	landColor       = color.RGBA{26, 29, 35, 255}
	outlineColor    = color.RGBA{36, 42, 53, 255}
)

// generateBackground rasterizes the embedded coastline outline onto a CPU
// image once, shifted by the layout's recentering offset so land stays under
// the recentered storms, then uploads it as the static background texture.
func (e *Engine) generateBackground() error {
	cpuImg := image.NewRGBA(image.Rect(0, 0, e.cfg.Width, e.cfg.Height))
	draw.Draw(cpuImg, cpuImg.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	fc, err := geojson.UnmarshalFeatureCollection(worldGeoJSON)
	if err != nil {
		return err
	}
	for _, f := range fc.Features {
		if f.Geometry.IsPolygon() {
			e.fillPolygon(cpuImg, f.Geometry.Polygon, landColor)
			for _, ring := range f.Geometry.Polygon {
				e.drawRing(cpuImg, ring, outlineColor)
			}
		} else if f.Geometry.IsMultiPolygon() {
			for _, poly := range f.Geometry.MultiPolygon {
				e.fillPolygon(cpuImg, poly, landColor)
				for _, ring := range poly {
					e.drawRing(cpuImg, ring, outlineColor)
				}
			}
		}
	}
	e.bg = ebiten.NewImageFromImage(cpuImg)
	return nil
}

// mapPoint projects a geojson [lon, lat] vertex and applies the recentering
// shift.
func (e *Engine) mapPoint(coord []float64) (float64, float64) {
	x, y := Project(coord[1], coord[0], e.cfg.Width, e.cfg.Height)
	c := e.layout.Center()
	return x + float64(c.X), y + float64(c.Y)
}

// fillPolygon scanline-fills a projected polygon, holes included via
// even-odd crossings.
func (e *Engine) fillPolygon(img *image.RGBA, rings [][][]float64, c color.RGBA) {
	if len(rings) == 0 {
		return
	}
	type point struct{ x, y float64 }
	projected := make([][]point, len(rings))
	minY, maxY := float64(e.cfg.Height), 0.0
	for i, ring := range rings {
		projected[i] = make([]point, len(ring))
		for j, p := range ring {
			x, y := e.mapPoint(p)
			projected[i][j] = point{x, y}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	for y := int(minY); y <= int(maxY); y++ {
		if y < 0 || y >= e.cfg.Height {
			continue
		}
		var nodes []int
		fy := float64(y)
		for _, ring := range projected {
			for i := 0; i < len(ring); i++ {
				j := (i + 1) % len(ring)
				if (ring[i].y < fy && ring[j].y >= fy) || (ring[j].y < fy && ring[i].y >= fy) {
					nodeX := ring[i].x + (fy-ring[i].y)/(ring[j].y-ring[i].y)*(ring[j].x-ring[i].x)
					nodes = append(nodes, int(nodeX))
				}
			}
		}
		sort.Ints(nodes)
		for i := 0; i < len(nodes)-1; i += 2 {
			xs, xe := nodes[i], nodes[i+1]
			if xs < 0 {
				xs = 0
			}
			if xe >= e.cfg.Width {
				xe = e.cfg.Width - 1
			}
			for x := xs; x < xe; x++ {
				off := y*img.Stride + x*4
				img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, 255
			}
		}
	}
}

func (e *Engine) drawRing(img *image.RGBA, coords [][]float64, c color.RGBA) {
	for i := 0; i < len(coords)-1; i++ {
		x1, y1 := e.mapPoint(coords[i])
		x2, y2 := e.mapPoint(coords[i+1])
		e.drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
	}
}

// drawLine is plain Bresenham with a bounds check per pixel.
func (e *Engine) drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		if x1 >= 0 && x1 < e.cfg.Width && y1 >= 0 && y1 < e.cfg.Height {
			off := y1*img.Stride + x1*4
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, 255
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
