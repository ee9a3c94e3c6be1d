package glres

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Caps describes the capabilities of the current rendering context.
type Caps struct {
	MajorVersion   int32
	MinorVersion   int32
	MaxTextureSize int32
	MaxArrayLayers int32
}

// QueryCaps reads capabilities from the bound context. Must be called
// after gl.Init with a current context.
func QueryCaps() Caps {
	var c Caps
	gl.GetIntegerv(gl.MAJOR_VERSION, &c.MajorVersion)
	gl.GetIntegerv(gl.MINOR_VERSION, &c.MinorVersion)
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &c.MaxTextureSize)
	gl.GetIntegerv(gl.MAX_ARRAY_TEXTURE_LAYERS, &c.MaxArrayLayers)
	return c
}

// CheckInstancing verifies that instanced arrays and primitive restart are
// available. Both are core since OpenGL 3.3; without them the clipmap
// renderer cannot function, so this is a fatal construction precondition.
func (c Caps) CheckInstancing() error {
	if c.MajorVersion > 3 || (c.MajorVersion == 3 && c.MinorVersion >= 3) {
		return nil
	}
	return fmt.Errorf("OpenGL %d.%d lacks instanced arrays and primitive restart (need 3.3+)",
		c.MajorVersion, c.MinorVersion)
}

// ClampTextureSize clamps a requested texture edge size to the platform
// maximum. Degrading resolution is preferred over failing outright.
func (c Caps) ClampTextureSize(requested int32) int32 {
	if c.MaxTextureSize > 0 && requested > c.MaxTextureSize {
		return c.MaxTextureSize
	}
	return requested
}
