package clipmap

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoclip/pkg/math"
)

// SelectLevel picks the coarsest level whose footprint still covers the
// viewer's horizon at the given altitude. Higher viewers start coarser;
// the result never exceeds the last configured level.
func SelectLevel(cfg Config, viewerHeight float32) int {
	footprint := cfg.BlockUnit * float32(cfg.StripStride()-1)
	threshold := viewerHeight * cfg.heightGain()

	level := 0
	for level < cfg.Levels-1 && footprint*math32.Exp2(float32(level)) < threshold {
		level++
	}
	return level
}

// GridOffset returns the level's texture-sampling grid offset for a
// viewer position: the viewer coordinates modulo the level's quad size,
// folded to non-positive and negated. Each component lies in
// [0, blockUnit*2^level), so adding it to the viewer position snaps up
// to the next quad boundary.
func GridOffset(cfg Config, viewer math.Vec2, level int) math.Vec2 {
	period := cfg.LevelScale(level)
	return math.Vec2{
		X: foldOffset(viewer.X, period),
		Y: foldOffset(viewer.Y, period),
	}
}

func foldOffset(v, period float32) float32 {
	m := math32.Mod(v, period)
	for m > 0 {
		m -= period
	}
	return -m
}

// snapAnchor returns the viewer's horizontal position snapped up to the
// finest level's quad grid. Anchoring block placement there keeps
// vertex coordinates small and texel-aligned at every level.
func snapAnchor(cfg Config, viewer math.Vec2) math.Vec2 {
	return viewer.Add(GridOffset(cfg, viewer, 0))
}
