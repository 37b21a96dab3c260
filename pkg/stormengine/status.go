package stormengine

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawStatus paints the HUD: playback timestamp (datetime mode), dataset
// span, visible-storm count and the wind color legend.
func (e *Engine) drawStatus(screen *ebiten.Image, fr *Frame) {
	if e.fontSource == nil {
		return
	}
	const margin, fontSize = 8.0, 14.0
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	mono := &text.GoTextFace{Source: e.monoSource, Size: fontSize}

	line := 0.0
	drawLine := func(f *text.GoTextFace, s string, alpha float32) {
		top := &text.DrawOptions{}
		top.GeoM.Translate(margin, margin+line)
		top.ColorScale.Scale(alpha, alpha, alpha, 1)
		text.Draw(screen, s, f, top)
		line += fontSize + 6
	}

	if target, ok := e.sampler.Target(fr.Time); ok {
		drawLine(mono, target.Format("2006-01-02 15:04"), 0.78)
	}
	if start, end, ok := e.sampler.Span(); ok {
		drawLine(face, fmt.Sprintf("Data span: %d - %d", start.Year(), end.Year()), 0.7)
	}
	drawLine(face, fmt.Sprintf("Storms visible: %d", fr.Visible), 0.7)

	e.drawLegend(screen, face)
}

// drawLegend shows the wind ramp as swatches at representative intensities.
func (e *Engine) drawLegend(screen *ebiten.Image, face *text.GoTextFace) {
	const swatch, spacing = 12.0, 22.0
	winds := []float64{30, 60, 90, 120}

	boxW := 150.0
	boxH := spacing*float64(len(winds)) + 16
	lx := 10.0
	ly := float64(e.cfg.Height) - boxH - 10

	vector.DrawFilledRect(screen, float32(lx-4), float32(ly-4), float32(boxW), float32(boxH), color.RGBA{0, 0, 0, 100}, false)
	vector.StrokeRect(screen, float32(lx-4), float32(ly-4), float32(boxW), float32(boxH), 1, outlineColor, false)

	for i, w := range winds {
		y := ly + float64(i)*spacing
		vector.DrawFilledRect(screen, float32(lx), float32(y), swatch, swatch, WindColor(w), false)
		top := &text.DrawOptions{}
		top.GeoM.Translate(lx+swatch+8, y-1)
		top.ColorScale.Scale(0.8, 0.8, 0.8, 1)
		text.Draw(screen, fmt.Sprintf("%d kt", int(w)), face, top)
	}
}
