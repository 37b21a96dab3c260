package stormengine

import _ "embed"

// Coarse world outline, simplified far below 1:110m. It only has to read as
// continents behind the animation, so a few hundred vertices are plenty.
//
//go:embed data/world.geo.json
var worldGeoJSON []byte
