// Package lighting provides directional lighting for terrain rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoclip/pkg/math"
)

// Directional is a sun-style light defined in world space.
type Directional struct {
	Direction math.Vec3 // towards the light, normalized
	Ambient   math.Vec3
	Diffuse   math.Vec3
}

// State is the per-frame light state consumed by shaders: the world
// direction re-expressed in view space via the inverse transpose of the
// view matrix's rotational part.
type State struct {
	WorldDirection math.Vec3
	ViewDirection  math.Vec3
	Ambient        math.Vec3
	Diffuse        math.Vec3
}

// Default returns a mid-morning sun with neutral colors.
func Default() Directional {
	return Directional{
		Direction: SunDirection(45, 55),
		Ambient:   math.Vec3{X: 0.35, Y: 0.35, Z: 0.38},
		Diffuse:   math.Vec3{X: 0.9, Y: 0.87, Z: 0.8},
	}
}

// StateFor converts the light into view space for the given view matrix.
func (d Directional) StateFor(view math.Mat4) State {
	normal := view.Rotation().Inverse().Transpose()
	return State{
		WorldDirection: d.Direction,
		ViewDirection:  normal.TransformDirection(d.Direction).Normalize(),
		Ambient:        d.Ambient,
		Diffuse:        d.Diffuse,
	}
}

// SunDirection converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around Y (0-360), latitude is
// elevation from the horizon (0-90).
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180.0
	lat := latitude * math32.Pi / 180.0

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
