package stormengine

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// WindColor maps wind speed in knots onto an HSV ramp from blue (calm)
// through yellow to red (violent). The usable range is about 5..150 kt;
// values outside clamp to the ramp ends.
func WindColor(wind float64) color.RGBA {
	wn := (wind - 5) / 145
	if wn < 0 {
		wn = 0
	}
	if wn > 1 {
		wn = 1
	}
	// hue 234 deg (blue) down to 0 (red)
	c := colorful.Hsv(0.65*(1-wn)*360, 0.92, 0.98)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
