package stormengine

import "math"

// NormalizeLon remaps any longitude into [-180, 180).
func NormalizeLon(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	return l - 180
}

// Project maps a lat/lon pair onto the canvas with a plain equirectangular
// mapping: lon -180..180 covers the full width, lat 90..-90 the full height
// top to bottom. This is a stylistic layout, not a cartographic transform.
// Latitudes beyond +/-90 land outside the canvas; callers bounds-check
// before drawing.
func Project(lat, lon float64, width, height int) (x, y float64) {
	lon = NormalizeLon(lon)
	x = (lon + 180) / 360 * float64(width)
	y = (90 - lat) / 180 * float64(height)
	return x, y
}
