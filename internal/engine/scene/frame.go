// Package scene provides a minimal scene node hierarchy and the per-frame
// traversal context shared by all renderers.
package scene

import (
	"github.com/Faultbox/geoclip/internal/engine/lighting"
	"github.com/Faultbox/geoclip/pkg/math"
)

// Frame carries everything a node needs during one update/draw pass.
// It is rebuilt every frame and never stored by nodes; state that must
// flow between call sites travels here, not in node fields.
type Frame struct {
	View     math.Mat4
	Proj     math.Mat4
	ViewProj math.Mat4

	// Model is the current world transform, maintained by Transform
	// nodes during traversal.
	Model math.Mat4

	CameraPosition math.Vec3

	Light lighting.State

	Time  float64 // seconds since start
	Delta float64 // seconds since previous frame
}

// NewFrame builds a frame context for the given camera matrices.
func NewFrame(view, proj math.Mat4, cameraPos math.Vec3, time, delta float64) *Frame {
	return &Frame{
		View:           view,
		Proj:           proj,
		ViewProj:       proj.Mul(view),
		Model:          math.Identity(),
		CameraPosition: cameraPos,
		Time:           time,
		Delta:          delta,
	}
}
