package stormengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeGlowKeyQuantizes(t *testing.T) {
	tests := []struct {
		name             string
		radius, intensity float64
		want             GlowKey
	}{
		{"fractional radius floors", 5.9, 0.5, GlowKey{Radius: 5, Intensity: 127}},
		{"same bucket as 5.4", 5.4, 0.5, GlowKey{Radius: 5, Intensity: 127}},
		{"intensity clamps high", 10, 1.7, GlowKey{Radius: 10, Intensity: 255}},
		{"intensity clamps low", 10, 0, GlowKey{Radius: 10, Intensity: 1}},
		{"radius clamps low", 0.2, 0.5, GlowKey{Radius: 1, Intensity: 127}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeGlowKey(tt.radius, tt.intensity))
		})
	}
}

func TestGlowCacheMemoizes(t *testing.T) {
	c := NewGlowCache()
	a, ka := c.Get(12.3, 0.8)
	b, kb := c.Get(12.9, 0.8001)
	assert.Equal(t, ka, kb, "nearby raw values quantize to one key")
	assert.Same(t, a, b, "quantized hits return the cached sprite")
	assert.Equal(t, 1, c.Len())

	d, kd := c.Get(13.0, 0.8)
	assert.NotEqual(t, ka, kd)
	assert.NotSame(t, a, d)
	assert.Equal(t, 2, c.Len())
	assert.Same(t, a, c.Image(ka))
}

func TestRenderGlowFalloff(t *testing.T) {
	c := NewGlowCache()
	img, key := c.Get(10, 1.0)
	require.Equal(t, GlowKey{Radius: 10, Intensity: 255}, key)
	size := img.Rect.Dx()
	require.Equal(t, 20, size)

	center := img.NRGBAAt(size/2, size/2).A
	mid := img.NRGBAAt(size/2+5, size/2).A
	corner := img.NRGBAAt(0, 0).A
	assert.Greater(t, center, mid, "alpha falls toward the edge")
	assert.Greater(t, mid, uint8(0))
	assert.Equal(t, uint8(0), corner, "nothing drawn beyond the half-size horizon")
}

func TestRenderGlowScalesWithIntensity(t *testing.T) {
	c := NewGlowCache()
	bright, _ := c.Get(8, 1.0)
	dim, _ := c.Get(8, 0.25)
	cx := bright.Rect.Dx() / 2
	assert.Greater(t, bright.NRGBAAt(cx, cx).A, dim.NRGBAAt(cx, cx).A)
}

func TestRenderGlowTinyRadius(t *testing.T) {
	c := NewGlowCache()
	img, _ := c.Get(0.3, 0.5)
	assert.Equal(t, 2, img.Rect.Dx(), "minimum sprite size")
}
