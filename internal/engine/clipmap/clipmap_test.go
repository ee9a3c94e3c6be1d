package clipmap

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoclip/pkg/math"
)

func testConfig() Config {
	return Config{Rank: 8, Levels: 6, BlockUnit: 1.0}
}

func TestConfigDerivedValues(t *testing.T) {
	cfg := testConfig()
	if got := cfg.StripStride(); got != 255 {
		t.Errorf("strip stride = %d, want 255", got)
	}
	if got := cfg.BlockVertices(); got != 64 {
		t.Errorf("block vertices = %d, want 64", got)
	}
	if got := cfg.BlockSubdivisions(); got != 63 {
		t.Errorf("block subdivisions = %d, want 63", got)
	}
	if got := cfg.SemiStripStride(); got != 127 {
		t.Errorf("semi strip stride = %d, want 127", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"rank 1 breaks divisibility", func(c *Config) { c.Rank = 1 }, true},
		{"rank 2 has no quads", func(c *Config) { c.Rank = 2 }, true},
		{"rank 3 single-quad blocks", func(c *Config) { c.Rank = 3 }, false},
		{"zero levels", func(c *Config) { c.Levels = 0 }, true},
		{"too many levels", func(c *Config) { c.Levels = MaxLevels + 1 }, true},
		{"zero block unit", func(c *Config) { c.BlockUnit = 0 }, true},
		{"negative height gain", func(c *Config) { c.HeightGain = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildTileGeometryRejectsDegenerate(t *testing.T) {
	if _, err := BuildTileGeometry(1); err == nil {
		t.Error("expected error for 1 vertex per edge")
	}
}

func TestBuildTileGeometryStructure(t *testing.T) {
	g, err := BuildTileGeometry(4)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(g.Positions); got != 4*4*2 {
		t.Fatalf("position floats = %d, want 32", got)
	}
	// Corners of the normalized grid.
	if g.Positions[0] != 0 || g.Positions[1] != 0 {
		t.Errorf("first point = (%f,%f), want (0,0)", g.Positions[0], g.Positions[1])
	}
	n := len(g.Positions)
	if g.Positions[n-2] != 1 || g.Positions[n-1] != 1 {
		t.Errorf("last point = (%f,%f), want (1,1)", g.Positions[n-2], g.Positions[n-1])
	}

	// 3 strip rows of 2*4 indices with 2 restarts between them.
	wantLen := 3*8 + 2
	if len(g.RowIndices) != wantLen {
		t.Fatalf("row index count = %d, want %d", len(g.RowIndices), wantLen)
	}
	if len(g.ColIndices) != wantLen {
		t.Fatalf("col index count = %d, want %d", len(g.ColIndices), wantLen)
	}

	restarts := 0
	for _, idx := range g.RowIndices {
		if idx == RestartIndex {
			restarts++
		} else if int(idx) >= g.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if restarts != 2 {
		t.Errorf("restart count = %d, want 2", restarts)
	}

	// First strip pairs row 0 with row 1.
	want := []uint32{0, 4, 1, 5, 2, 6, 3, 7}
	for i, w := range want {
		if g.RowIndices[i] != w {
			t.Fatalf("row index %d = %d, want %d", i, g.RowIndices[i], w)
		}
	}
	// Transposed walk pairs column 0 with column 1.
	wantCol := []uint32{0, 1, 4, 5, 8, 9, 12, 13}
	for i, w := range wantCol {
		if g.ColIndices[i] != w {
			t.Fatalf("col index %d = %d, want %d", i, g.ColIndices[i], w)
		}
	}
}

func TestInstanceCountInvariantAcrossLevels(t *testing.T) {
	cfg := testConfig()
	base := GenerateLevel(cfg, 0)
	baseCounts := base.Counts()

	if baseCounts[0] != 12 {
		t.Errorf("interior count = %d, want 12", baseCounts[0])
	}
	if baseCounts[1] != 2 || baseCounts[2] != 2 {
		t.Errorf("ring fix counts = %d,%d, want 2,2", baseCounts[1], baseCounts[2])
	}
	perSide := (cfg.StripStride() + 1) / cfg.BlockSubdivisions()
	if baseCounts[3] != 2*perSide || baseCounts[4] != 2*perSide {
		t.Errorf("exterior counts = %d,%d, want %d each", baseCounts[3], baseCounts[4], 2*perSide)
	}

	for level := 1; level < cfg.Levels; level++ {
		if got := GenerateLevel(cfg, level).Counts(); got != baseCounts {
			t.Errorf("level %d counts = %v, want %v", level, got, baseCounts)
		}
	}
}

func TestCapBlocksAtDocumentedOffsets(t *testing.T) {
	cfg := testConfig()
	s := cfg.BlockSubdivisions()

	for level := 0; level < cfg.Levels; level++ {
		li := GenerateLevel(cfg, level)
		if len(li.Cap) != 4 {
			t.Fatalf("level %d: cap count = %d, want 4", level, len(li.Cap))
		}

		u := cfg.LevelScale(level)
		want := map[[2]float32]bool{
			{0, 0}:                                   true,
			{float32(-s) * u, 0}:                     true,
			{0, float32(-s) * u}:                     true,
			{float32(-s) * u, float32(-s) * u}:       true,
		}
		for _, in := range li.Cap {
			key := [2]float32{in.PositionOffset.X, in.PositionOffset.Y}
			if !want[key] {
				t.Errorf("level %d: unexpected cap offset %v", level, key)
			}
			delete(want, key)
			if in.BlockScale.X != float32(s)*u || in.BlockScale.Y != float32(s)*u {
				t.Errorf("level %d: cap scale = %v, want %f", level, in.BlockScale, float32(s)*u)
			}
		}
		if len(want) != 0 {
			t.Errorf("level %d: missing cap offsets %v", level, want)
		}
	}
}

// Rasterizes interior and ring-fix instances onto the quad grid and
// checks they tile their footprint exactly once with no overlap.
func TestInteriorAndRingFixTileWithoutOverlap(t *testing.T) {
	cfg := Config{Rank: 4, Levels: 1, BlockUnit: 1.0}
	s := cfg.BlockSubdivisions()    // 3
	semi := cfg.SemiStripStride()   // 7
	li := GenerateLevel(cfg, 0)

	grid := map[[2]int]int{}
	raster := func(in Instance) {
		qx := int(math32.Round(in.PositionOffset.X))
		qy := int(math32.Round(in.PositionOffset.Y))
		qw := int(math32.Round(in.BlockScale.X))
		qh := int(math32.Round(in.BlockScale.Y))
		for y := qy; y < qy+qh; y++ {
			for x := qx; x < qx+qw; x++ {
				grid[[2]int{x, y}]++
			}
		}
	}
	for _, in := range li.Interior {
		raster(in)
	}
	for _, in := range li.RingFixH {
		raster(in)
	}
	for _, in := range li.RingFixV {
		raster(in)
	}

	// Covered footprint: quads -semi .. 2S-1 per axis, center included.
	lo, hi := -semi, 2*s
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			inHole := x >= -(s+1) && x < s && y >= -(s+1) && y < s &&
				!(x == -1 || y == -1)
			n := grid[[2]int{x, y}]
			if inHole {
				if n != 0 {
					t.Fatalf("quad (%d,%d) in center hole covered %d times", x, y, n)
				}
				continue
			}
			if n != 1 {
				t.Fatalf("quad (%d,%d) covered %d times, want 1", x, y, n)
			}
		}
	}
}

func TestSelectLevelEndToEnd(t *testing.T) {
	cfg := testConfig() // rank 8, 6 levels, unit 1.0, gain 2.5

	if got := SelectLevel(cfg, 50); got != 0 {
		t.Errorf("height 50: level = %d, want 0", got)
	}
	if got := SelectLevel(cfg, 2000); got != 5 {
		t.Errorf("height 2000: level = %d, want 5", got)
	}
	// Never exceeds the configured level count.
	if got := SelectLevel(cfg, 1e9); got != cfg.Levels-1 {
		t.Errorf("extreme height: level = %d, want %d", got, cfg.Levels-1)
	}
}

func TestSelectLevelMonotonicInHeight(t *testing.T) {
	cfg := testConfig()
	prev := 0
	for h := float32(0); h <= 5000; h += 25 {
		level := SelectLevel(cfg, h)
		if level < prev {
			t.Fatalf("level dropped from %d to %d at height %f", prev, level, h)
		}
		prev = level
	}
}

func TestGridOffsetIdempotentAndBounded(t *testing.T) {
	cfg := testConfig()
	viewers := []math.Vec2{
		{X: 0, Y: 0},
		{X: 1234.567, Y: -89.25},
		{X: -0.001, Y: 99999.5},
		{X: 17, Y: -32},
	}

	for level := 0; level < cfg.Levels; level++ {
		period := cfg.BlockUnit * math32.Exp2(float32(level))
		for _, v := range viewers {
			a := GridOffset(cfg, v, level)
			b := GridOffset(cfg, v, level)
			if a != b {
				t.Fatalf("level %d viewer %v: offsets differ: %v vs %v", level, v, a, b)
			}
			if a.X < 0 || a.X >= period || a.Y < 0 || a.Y >= period {
				t.Fatalf("level %d viewer %v: offset %v outside [0,%f)", level, v, a, period)
			}
		}
	}
}

func TestSnapAnchorQuadAligned(t *testing.T) {
	cfg := testConfig()
	v := math.Vec2{X: 2.3, Y: -17.75}
	a := snapAnchor(cfg, v)

	for _, c := range []float32{a.X, a.Y} {
		frac := c - math32.Round(c/cfg.BlockUnit)*cfg.BlockUnit
		if math32.Abs(frac) > 1e-4 {
			t.Errorf("anchor component %f not on the quad grid", c)
		}
	}
	if a.X < v.X || a.Y < v.Y {
		t.Errorf("anchor %v snapped below viewer %v", a, v)
	}
}

func TestLevelCountsCallableOnReturnValue(t *testing.T) {
	cfg := testConfig()
	want := GenerateLevel(cfg, 0).Counts()
	for level := 1; level < cfg.Levels; level++ {
		if got := GenerateLevel(cfg, level).Counts(); got != want {
			t.Errorf("level %d counts = %v, want %v", level, got, want)
		}
	}
}

func TestCullCategorySelection(t *testing.T) {
	mk := func(lod float32) Instance {
		return Instance{Lod: lod, Color: [4]float32{lod, 0, 0, 1}}
	}
	static := []Instance{mk(0), mk(1), mk(2), mk(1)}
	caps := []Instance{mk(9), mk(9)}

	// Culling off: everything packs, caps stay out.
	packed := cullCategory(static, caps, 1, false)
	if got := len(packed) / InstanceFloats; got != len(static) {
		t.Fatalf("culling off: %d instances packed, want %d", got, len(static))
	}

	// Culling on at level 1: the lod-0 instance drops, caps append last.
	packed = cullCategory(static, caps, 1, true)
	if got := len(packed) / InstanceFloats; got != 3+len(caps) {
		t.Fatalf("culling on: %d instances packed, want %d", got, 3+len(caps))
	}
	for i := 0; i < len(packed); i += InstanceFloats {
		if lod := packed[i+8]; lod < 1 {
			t.Errorf("instance at float %d has lod %f below current level", i, lod)
		}
	}
	// The two trailing instances are the caps.
	capStart := len(packed) - len(caps)*InstanceFloats
	for i := capStart; i < len(packed); i += InstanceFloats {
		if packed[i+8] != 9 {
			t.Errorf("trailing instance lod = %f, want cap lod 9", packed[i+8])
		}
	}
}

func TestFillLayerRejectsBadLevel(t *testing.T) {
	s := &ElevationStore{cfg: testConfig()}
	if err := s.FillLayer(nil, -1); err == nil {
		t.Error("expected error for negative layer")
	}
	if err := s.FillLayer(nil, s.cfg.Levels); err == nil {
		t.Error("expected error for layer past the level count")
	}
}

func TestInstancePacking(t *testing.T) {
	in := Instance{
		PositionOffset: math.Vec2{X: 1, Y: 2},
		BlockScale:     math.Vec2{X: 3, Y: 4},
		TexOffset:      math.Vec2{X: 5, Y: 6},
		TexScale:       math.Vec2{X: 7, Y: 8},
		Lod:            9,
		Color:          [4]float32{10, 11, 12, 13},
	}

	packed := in.appendPacked(nil)
	if len(packed) != InstanceFloats {
		t.Fatalf("packed length = %d, want %d", len(packed), InstanceFloats)
	}
	for i, want := range []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13} {
		if packed[i] != want {
			t.Errorf("packed[%d] = %f, want %f", i, packed[i], want)
		}
	}

	kept := packInstances([]Instance{in, in, in}, func(x *Instance) bool { return false })
	if len(kept) != 0 {
		t.Errorf("expected empty pack when nothing survives, got %d floats", len(kept))
	}
	all := packInstances([]Instance{in, in}, nil)
	if len(all) != 2*InstanceFloats {
		t.Errorf("nil filter should keep everything, got %d floats", len(all))
	}
}
