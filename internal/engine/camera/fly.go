// Package camera provides camera implementations for terrain viewing.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoclip/pkg/math"
)

// FlyCamera is a free-look camera for roaming over terrain.
type FlyCamera struct {
	Position math.Vec3

	Yaw   float32 // radians around Y
	Pitch float32 // radians, clamped shy of the poles

	MoveSpeed float32 // units per second
	LookSpeed float32 // radians per pixel of mouse delta

	MinPitch float32
	MaxPitch float32
}

// NewFlyCamera creates a camera hovering above the origin looking north.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:  math.Vec3{X: 0, Y: 80, Z: 0},
		Yaw:       0,
		Pitch:     -0.4,
		MoveSpeed: 40.0,
		LookSpeed: 0.003,
		MinPitch:  -1.5,
		MaxPitch:  1.5,
	}
}

// Forward returns the view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: cp * math32.Sin(c.Yaw),
		Y: math32.Sin(c.Pitch),
		Z: -cp * math32.Cos(c.Yaw),
	}
}

// Right returns the horizontal strafe direction.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{
		X: math32.Cos(c.Yaw),
		Y: 0,
		Z: math32.Sin(c.Yaw),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	target := c.Position.Add(c.Forward())
	return math.LookAt(c.Position, target, math.Vec3{X: 0, Y: 1, Z: 0})
}

// HandleLook updates orientation from a mouse delta.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.LookSpeed
	c.Pitch -= deltaY * c.LookSpeed

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleMovement moves the camera. forward/right/up are -1..1 input axes,
// dt is the frame delta in seconds.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt

	move := c.Forward().Scale(forward * step).
		Add(c.Right().Scale(right * step))
	move.Y += up * step

	c.Position = c.Position.Add(move)
}
