package clipmap

import (
	"fmt"

	"github.com/Faultbox/geoclip/internal/engine/glres"
	"github.com/Faultbox/geoclip/internal/engine/heightfield"
)

// ElevationStore owns the layered elevation texture, one layer per
// clipmap level. Layer L holds a height sample per quad of level L,
// centered on the origin; the repeat wrap mode supplies the toroidal
// addressing the per-level grid offsets rely on.
type ElevationStore struct {
	cfg Config
	tex *glres.TextureArray
}

// NewElevationStore allocates the texture array and fills every layer
// from the source. A resolution beyond the platform limit is clamped,
// not rejected.
func NewElevationStore(cfg Config, src heightfield.Source, caps glres.Caps) (*ElevationStore, error) {
	tex := glres.NewTextureArray(cfg.texResolution(), int32(cfg.Levels), caps)

	s := &ElevationStore{cfg: cfg, tex: tex}
	if err := s.Fill(src); err != nil {
		tex.Release()
		return nil, err
	}
	return s, nil
}

// Fill re-samples the source into every layer.
func (s *ElevationStore) Fill(src heightfield.Source) error {
	for level := 0; level < s.cfg.Levels; level++ {
		if err := s.FillLayer(src, level); err != nil {
			return err
		}
	}
	return nil
}

// FillLayer re-samples one level's layer. The sample window spans the
// level footprint plus the seam row, so one texel covers one quad at
// the reference resolution.
func (s *ElevationStore) FillLayer(src heightfield.Source, level int) error {
	if level < 0 || level >= s.cfg.Levels {
		return fmt.Errorf("clipmap: elevation layer %d out of range [0,%d)", level, s.cfg.Levels)
	}

	res := int(s.tex.Size())
	span := float32(s.cfg.StripStride()+1) * s.cfg.LevelScale(level)
	step := span / float32(res)
	origin := -span / 2

	data := src.Region(res, origin, origin, step)
	if err := s.tex.UploadLayer(int32(level), data); err != nil {
		return fmt.Errorf("elevation layer %d: %w", level, err)
	}
	return nil
}

// Bind binds the texture array to the given unit.
func (s *ElevationStore) Bind(unit uint32) {
	s.tex.Bind(unit)
}

// Resolution returns the per-layer edge size actually allocated.
func (s *ElevationStore) Resolution() int32 {
	return s.tex.Size()
}

// Layers returns the layer count.
func (s *ElevationStore) Layers() int32 {
	return s.tex.Layers()
}

// Retain adds a reference for a second owner.
func (s *ElevationStore) Retain() *ElevationStore {
	s.tex.Retain()
	return s
}

// Release drops one reference, freeing the texture at zero.
func (s *ElevationStore) Release() {
	s.tex.Release()
}
