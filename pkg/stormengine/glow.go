package stormengine

import (
	"image"
	"image/color"
	"math"
)

// GlowKey identifies one pre-rendered glow sprite. Radius is rounded to a
// whole pixel and intensity quantized to 1..255; without quantization the
// cache would grow by one entry per frame and stop being a cache.
type GlowKey struct {
	Radius    int
	Intensity int
}

// MakeGlowKey quantizes raw draw parameters into a cache key. Intensity is
// expected in 0..1.
func MakeGlowKey(radius, intensity float64) GlowKey {
	r := int(radius)
	if r < 1 {
		r = 1
	}
	q := int(intensity * 255)
	if q < 1 {
		q = 1
	}
	if q > 255 {
		q = 255
	}
	return GlowKey{Radius: r, Intensity: q}
}

// GlowCache memoizes radial-falloff sprites. Entries are created lazily and
// retained for the process lifetime; the quantized key space is small enough
// that eviction is not worth having. Single-writer discipline: the cache is
// only touched from the frame loop.
type GlowCache struct {
	images map[GlowKey]*image.NRGBA
}

func NewGlowCache() *GlowCache {
	return &GlowCache{images: make(map[GlowKey]*image.NRGBA)}
}

// Get returns the sprite for the quantized parameters, rendering it on first
// use. Identical keys always return the identical image.
func (c *GlowCache) Get(radius, intensity float64) (*image.NRGBA, GlowKey) {
	key := MakeGlowKey(radius, intensity)
	img, ok := c.images[key]
	if !ok {
		img = renderGlow(key)
		c.images[key] = img
	}
	return img, key
}

// Image returns the cached sprite for key, or nil if it was never rendered.
func (c *GlowCache) Image(key GlowKey) *image.NRGBA {
	return c.images[key]
}

func (c *GlowCache) Len() int {
	return len(c.images)
}

// renderGlow paints a white disc whose alpha falls off quadratically from
// the center: alpha = (1 - d/half)^2 * 255 * intensity, zero beyond the
// half-size horizon. Color is applied at blit time via color scaling, so one
// sprite serves every wind band.
func renderGlow(key GlowKey) *image.NRGBA {
	size := key.Radius * 2
	if size < 2 {
		size = 2
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	intensity := float64(key.Intensity) / 255
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - half + 0.5
			dy := float64(y) - half + 0.5
			d := math.Hypot(dx, dy)
			t := 1 - d/half
			if t <= 0 {
				continue
			}
			a := uint8(t * t * 255 * intensity)
			if a == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: a})
		}
	}
	return img
}
