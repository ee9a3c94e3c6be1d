// Package clipmap implements geometry clipmap terrain rendering: nested
// square rings of instanced block geometry centered on the viewer, with
// per-ring elevation sampled from a layered texture array.
package clipmap

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MaxLevels bounds the level count; grid offsets travel to the shader as
// a fixed-size uniform array.
const MaxLevels = 16

// Config holds the immutable clipmap parameters fixed at construction.
type Config struct {
	// Rank controls the strip stride: each level spans 2^Rank - 1
	// vertices per edge.
	Rank int
	// Levels is the number of nested rings.
	Levels int
	// BlockUnit is the world-space size of one quad at level 0.
	BlockUnit float32
	// HeightGain scales viewer altitude during level selection.
	// Zero means the default of 2.5.
	HeightGain float32
	// TexResolution is the requested per-layer elevation texture edge
	// size. Zero means the default of 256.
	TexResolution int32

	// LevelCulling skips rings finer than the selected level each
	// frame and plugs the innermost hole with cap blocks.
	LevelCulling bool
	// AnchorViewer recenters the clipmap's placement transform on the
	// viewer's horizontal position every frame, keeping vertex
	// coordinates small regardless of world position.
	AnchorViewer bool
	// DrawExteriors enables the boundary strip draw calls. The strips
	// are always generated and uploaded; only dispatch is gated.
	DrawExteriors bool
}

// DefaultHeightGain is the level-selection altitude multiplier.
const DefaultHeightGain = 2.5

// DefaultTexResolution is the reference elevation texture edge size the
// texture-coordinate scale is tied to.
const DefaultTexResolution = 256

// StripStride returns the vertex count across one full level edge,
// always 2^Rank - 1 (odd).
func (c Config) StripStride() int {
	return 1<<c.Rank - 1
}

// SemiStripStride returns (StripStride-1)/2, the outer half-width of a
// level in quads.
func (c Config) SemiStripStride() int {
	return (c.StripStride() - 1) / 2
}

// BlockVertices returns the vertex count across one block edge.
func (c Config) BlockVertices() int {
	return (c.StripStride() + 1) / 4
}

// BlockSubdivisions returns the quad count across one block edge.
func (c Config) BlockSubdivisions() int {
	return c.BlockVertices() - 1
}

// LevelScale returns the world size of one quad at the given level.
func (c Config) LevelScale(level int) float32 {
	return c.BlockUnit * math32.Exp2(float32(level))
}

func (c Config) heightGain() float32 {
	if c.HeightGain == 0 {
		return DefaultHeightGain
	}
	return c.HeightGain
}

func (c Config) texResolution() int32 {
	if c.TexResolution == 0 {
		return DefaultTexResolution
	}
	return c.TexResolution
}

// Validate reports the first violated construction precondition.
func (c Config) Validate() error {
	if c.Rank < 2 || (c.StripStride()+1)%4 != 0 {
		return fmt.Errorf("rank %d: strip stride %d + 1 must divide evenly by 4", c.Rank, c.StripStride())
	}
	if c.BlockSubdivisions() < 1 {
		return fmt.Errorf("rank %d: block of %d vertices has no quads", c.Rank, c.BlockVertices())
	}
	if c.Levels < 1 || c.Levels > MaxLevels {
		return fmt.Errorf("levels %d out of range [1,%d]", c.Levels, MaxLevels)
	}
	if c.BlockUnit <= 0 {
		return fmt.Errorf("block unit %f must be positive", c.BlockUnit)
	}
	if c.HeightGain < 0 {
		return fmt.Errorf("height gain %f must not be negative", c.HeightGain)
	}
	if c.TexResolution < 0 {
		return fmt.Errorf("texture resolution %d must not be negative", c.TexResolution)
	}
	return nil
}
