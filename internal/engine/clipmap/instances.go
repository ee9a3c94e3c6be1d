package clipmap

import "github.com/Faultbox/geoclip/pkg/math"

// Instance parameterizes one placement of the shared tile geometry. All
// fields are world- or texture-space absolutes; the vertex shader needs
// no knowledge of the tiling scheme.
type Instance struct {
	// PositionOffset is the world-space XZ corner of the instance.
	PositionOffset math.Vec2
	// BlockScale is the world-space XZ span; unequal components stretch
	// the square grid into a strip.
	BlockScale math.Vec2
	// TexOffset and TexScale map the instance into its level's
	// elevation layer, with the level center at (0.5, 0.5).
	TexOffset math.Vec2
	TexScale  math.Vec2
	// Lod selects the elevation layer and the grid-offset uniform slot.
	Lod float32
	// Color tints the instance in the debug shading mode.
	Color [4]float32
}

// InstanceFloats is the packed per-instance attribute size in floats.
const InstanceFloats = 13

// appendPacked serializes the instance in vertex-attribute order.
func (in *Instance) appendPacked(dst []float32) []float32 {
	return append(dst,
		in.PositionOffset.X, in.PositionOffset.Y,
		in.BlockScale.X, in.BlockScale.Y,
		in.TexOffset.X, in.TexOffset.Y,
		in.TexScale.X, in.TexScale.Y,
		in.Lod,
		in.Color[0], in.Color[1], in.Color[2], in.Color[3],
	)
}

// LevelInstances groups one level's instances by draw category.
type LevelInstances struct {
	Interior  []Instance
	RingFixH  []Instance
	RingFixV  []Instance
	ExteriorH []Instance
	ExteriorV []Instance
	Cap       []Instance
}

// Per-category debug tints.
var (
	colorInterior = [4]float32{0.30, 0.65, 0.30, 1}
	colorRingFix  = [4]float32{0.80, 0.30, 0.30, 1}
	colorExterior = [4]float32{0.30, 0.40, 0.80, 1}
	colorCap      = [4]float32{0.85, 0.75, 0.25, 1}
)

// levelBuilder carries the per-level constants instance construction
// reads over and over.
type levelBuilder struct {
	scale float32 // world size of one quad at this level
	texel float32 // texture-space size of one quad
	lod   float32
	tint  float32
}

// place builds one instance from a quad-space rectangle. qx, qy is the
// corner relative to the level center, qw, qh the span in quads.
func (b levelBuilder) place(qx, qy, qw, qh int, color [4]float32) Instance {
	for i := 0; i < 3; i++ {
		color[i] *= b.tint
	}
	return Instance{
		PositionOffset: math.Vec2{X: float32(qx) * b.scale, Y: float32(qy) * b.scale},
		BlockScale:     math.Vec2{X: float32(qw) * b.scale, Y: float32(qh) * b.scale},
		TexOffset:      math.Vec2{X: float32(qx)*b.texel + 0.5, Y: float32(qy)*b.texel + 0.5},
		TexScale:       math.Vec2{X: float32(qw) * b.texel, Y: float32(qh) * b.texel},
		Lod:            b.lod,
		Color:          color,
	}
}

// GenerateLevel computes every instance of one clipmap level. The result
// is a pure function of the config and level index; viewer state only
// selects which instances draw, never where they sit.
//
// Layout, in quad units relative to the level center: block columns and
// rows start at {-semi, -semi+S, 0, S} where S is the block subdivision
// count and semi the half-width 2S+1. That leaves a one-quad seam cross
// at x=-1 / y=-1, plugged by the ring-fix strips; the vertical strip on
// the negative side runs one quad longer to cover the cross center.
func GenerateLevel(cfg Config, level int) LevelInstances {
	s := cfg.BlockSubdivisions()
	semi := cfg.SemiStripStride()

	b := levelBuilder{
		scale: cfg.LevelScale(level),
		texel: 1.0 / float32(cfg.StripStride()+1),
		lod:   float32(level),
		tint:  1.0 - 0.05*float32(level),
	}
	if b.tint < 0.5 {
		b.tint = 0.5
	}

	var li LevelInstances

	// Interior: the 4x4 block grid minus the inner 2x2.
	origins := [4]int{-semi, -semi + s, 0, s}
	inner := func(o int) bool { return o == -semi+s || o == 0 }
	for _, cy := range origins {
		for _, cx := range origins {
			if inner(cx) && inner(cy) {
				continue
			}
			li.Interior = append(li.Interior, b.place(cx, cy, s, s, colorInterior))
		}
	}

	// Seam row y=-1, left and right of the vertical seam.
	li.RingFixH = []Instance{
		b.place(-semi, -1, 2*s, 1, colorRingFix),
		b.place(0, -1, 2*s, 1, colorRingFix),
	}
	// Seam column x=-1; the bottom strip takes the (-1,-1) cross quad.
	li.RingFixV = []Instance{
		b.place(-1, -semi, 1, 2*s+1, colorRingFix),
		b.place(-1, 0, 1, 2*s, colorRingFix),
	}

	// Exterior skirt, two quads deep past the block grid on every side.
	perSide := (cfg.StripStride() + 1) / s
	for i := 0; i < perSide; i++ {
		run := -semi - 2 + i*s
		li.ExteriorH = append(li.ExteriorH,
			b.place(run, -semi-2, s, 2, colorExterior),
			b.place(run, 2*s, s, 2, colorExterior),
		)
		li.ExteriorV = append(li.ExteriorV,
			b.place(-semi-2, run, 2, s, colorExterior),
			b.place(2*s, run, 2, s, colorExterior),
		)
	}

	// Cap blocks tile the innermost square seamlessly. Drawn only for
	// the coarsest live level when level culling is active.
	for _, off := range [4][2]int{{0, 0}, {-s, 0}, {0, -s}, {-s, -s}} {
		li.Cap = append(li.Cap, b.place(off[0], off[1], s, s, colorCap))
	}

	return li
}

// Counts returns the per-category instance counts, in the order
// interior, ring-fix-H, ring-fix-V, exterior-H, exterior-V, cap.
func (li LevelInstances) Counts() [6]int {
	return [6]int{
		len(li.Interior), len(li.RingFixH), len(li.RingFixV),
		len(li.ExteriorH), len(li.ExteriorV), len(li.Cap),
	}
}

// cullCategory packs one category's surviving instances for a frame at
// the given level. With culling on, instances finer than the current
// level drop out and the cap blocks are appended; with culling off
// everything packs and caps stay out, since the finer rings cover the
// center themselves.
func cullCategory(static, caps []Instance, currentLevel int, culling bool) []float32 {
	if !culling {
		return packInstances(static, nil)
	}
	min := float32(currentLevel)
	packed := packInstances(static, func(in *Instance) bool { return in.Lod >= min })
	for i := range caps {
		packed = caps[i].appendPacked(packed)
	}
	return packed
}

// packInstances serializes a culled instance list. keep reports whether
// an instance survives; a nil keep retains everything.
func packInstances(src []Instance, keep func(*Instance) bool) []float32 {
	out := make([]float32, 0, len(src)*InstanceFloats)
	for i := range src {
		if keep != nil && !keep(&src[i]) {
			continue
		}
		out = src[i].appendPacked(out)
	}
	return out
}
