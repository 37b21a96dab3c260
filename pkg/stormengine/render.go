package stormengine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const labelFontSize = 14.0

// drawFrame blits the frame's instructions: glow dots additively, then
// spirals, then labels, so captions stay readable on top.
func (e *Engine) drawFrame(screen *ebiten.Image, fr *Frame) {
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	for _, d := range fr.Dots {
		img := e.glowImage(d.Key)
		if img == nil {
			continue
		}
		half := float64(img.Bounds().Dx()) / 2
		a := float32(d.Alpha) / 255
		r := float32(d.Color.R) / 255 * a
		g := float32(d.Color.G) / 255 * a
		b := float32(d.Color.B) / 255 * a
		op.GeoM.Reset()
		op.GeoM.Translate(float64(d.X)-half, float64(d.Y)-half)
		op.ColorScale.Reset()
		op.ColorScale.Scale(r, g, b, a)
		screen.DrawImage(img, op)
	}

	for _, s := range fr.Spirals {
		for i := 0; i < len(s.Points)-1; i++ {
			p0, p1 := s.Points[i], s.Points[i+1]
			vector.StrokeLine(screen, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), spiralStroke, s.Color, true)
		}
	}

	if e.fontSource == nil {
		return
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: labelFontSize}
	for _, l := range fr.Labels {
		top := &text.DrawOptions{}
		top.GeoM.Translate(float64(l.X), float64(l.Y))
		top.ColorScale.Scale(0.86, 0.86, 0.86, 1)
		text.Draw(screen, l.Text, face, top)
	}
}

// glowImage returns the GPU copy of a cached glow sprite, uploading it on
// first use. Keys come from Advance, so the CPU sprite always exists.
func (e *Engine) glowImage(key GlowKey) *ebiten.Image {
	if img, ok := e.glowImages[key]; ok {
		return img
	}
	src := e.glow.Image(key)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	e.glowImages[key] = img
	return img
}
