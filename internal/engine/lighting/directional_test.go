package lighting

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoclip/pkg/math"
)

func TestSunDirectionStraightUp(t *testing.T) {
	d := SunDirection(0, 90)
	if math32.Abs(d.X) > 1e-6 || math32.Abs(d.Y-1) > 1e-6 || math32.Abs(d.Z) > 1e-6 {
		t.Errorf("latitude 90 should point straight up, got %v", d)
	}
}

func TestSunDirectionNormalized(t *testing.T) {
	for _, angles := range [][2]float32{{0, 0}, {45, 55}, {180, 30}, {270, 80}} {
		d := SunDirection(angles[0], angles[1])
		if math32.Abs(d.Length()-1) > 1e-5 {
			t.Errorf("direction for %v not normalized: length %f", angles, d.Length())
		}
	}
}

func TestStateForIdentityView(t *testing.T) {
	light := Default()
	state := light.StateFor(math.Identity())

	diff := state.ViewDirection.Sub(state.WorldDirection).Length()
	if diff > 1e-5 {
		t.Errorf("identity view should preserve direction, world %v view %v",
			state.WorldDirection, state.ViewDirection)
	}
}

func TestStateForRotatedView(t *testing.T) {
	light := Directional{Direction: math.Vec3{X: 0, Y: 0, Z: 1}}

	// Quarter turn around Y moves +Z into +X in view space.
	state := light.StateFor(math.RotateY(math32.Pi / 2))
	want := math.Vec3{X: 1, Y: 0, Z: 0}
	if state.ViewDirection.Sub(want).Length() > 1e-5 {
		t.Errorf("got view direction %v, want %v", state.ViewDirection, want)
	}
}
