package stormengine

import (
	"image/color"
	"math"
)

// Point is one vertex of a spiral polyline in canvas space.
type Point struct {
	X, Y float64
}

// TrailDot is a draw instruction for one fading trail position.
type TrailDot struct {
	X, Y   int
	Radius int
	Color  color.RGBA
	Alpha  uint8
	Key    GlowKey
}

// Spiral is a draw instruction for the storm's rotating spiral polyline,
// ordered center outward.
type Spiral struct {
	Points []Point
	Color  color.RGBA
}

// Label is a draw instruction for a storm's name/wind caption.
type Label struct {
	X, Y int
	Text string
}

// Frame is the ordered list of draw instructions produced for one tick.
// Instructions appear in store track order, so layering is reproducible.
type Frame struct {
	Time    float64
	Visible int
	Dots    []TrailDot
	Spirals []Spiral
	Labels  []Label
}

// SpiralPoints samples the parametric curve r(t) = radius*t,
// angle(t) = base + t*coils*2pi at a fixed step count, forming a polyline
// from the center outward.
func SpiralPoints(cx, cy, radius, baseAngle float64, steps, coils int) []Point {
	if steps < 2 {
		steps = 2
	}
	pts := make([]Point, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		r := radius * t
		a := baseAngle + t*float64(coils)*2*math.Pi
		pts[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}
