package clipmap

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoclip/internal/engine/clipmap/shaders"
	"github.com/Faultbox/geoclip/internal/engine/glres"
	"github.com/Faultbox/geoclip/internal/engine/heightfield"
	"github.com/Faultbox/geoclip/internal/engine/scene"
	"github.com/Faultbox/geoclip/internal/engine/shader"
	"github.com/Faultbox/geoclip/internal/logger"
	"github.com/Faultbox/geoclip/pkg/math"
)

// Draw categories. Interior blocks and caps share geometry, winding and
// buffers, so they dispatch as one category.
const (
	catBlocks = iota
	catRingFixH
	catRingFixV
	catExteriorH
	catExteriorV
	numCategories
)

// category holds one draw category's GPU state.
type category struct {
	vao       *glres.VertexArray
	instances *glres.Buffer
	indices   *glres.Buffer
	count     int32
}

// Stats captures the outcome of the last drawn frame.
type Stats struct {
	CurrentLevel int
	DrawCalls    int
	Instances    int
	Culled       int
}

// Renderer draws the clipmap terrain. It owns the shared tile geometry,
// the per-category instance buffers and the elevation store, and runs
// the full selection/cull/upload/dispatch protocol once per Draw call.
// All methods must run on the thread owning the rendering context.
type Renderer struct {
	cfg    Config
	geom   *TileGeometry
	levels []LevelInstances

	program   *shader.Program
	positions *glres.Buffer
	store     *ElevationStore
	cats      [numCategories]category

	// static holds each category's full instance list across levels,
	// the source the per-frame cull filters from.
	static [numCategories][]Instance

	debugTint bool
	stats     Stats
}

// NewRenderer builds the clipmap from a validated config and an
// elevation source. Fails if the context lacks instancing support or
// shader compilation fails; an oversized texture resolution is clamped
// instead.
func NewRenderer(cfg Config, src heightfield.Source) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("clipmap config: %w", err)
	}

	caps := glres.QueryCaps()
	if err := caps.CheckInstancing(); err != nil {
		return nil, fmt.Errorf("clipmap: %w", err)
	}

	geom, err := BuildTileGeometry(cfg.BlockVertices())
	if err != nil {
		return nil, err
	}

	program, err := shader.Compile(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	store, err := NewElevationStore(cfg, src, caps)
	if err != nil {
		program.Delete()
		return nil, err
	}

	r := &Renderer{
		cfg:     cfg,
		geom:    geom,
		program: program,
		store:   store,
	}

	r.levels = make([]LevelInstances, cfg.Levels)
	for level := 0; level < cfg.Levels; level++ {
		li := GenerateLevel(cfg, level)
		r.levels[level] = li
		r.static[catBlocks] = append(r.static[catBlocks], li.Interior...)
		r.static[catRingFixH] = append(r.static[catRingFixH], li.RingFixH...)
		r.static[catRingFixV] = append(r.static[catRingFixV], li.RingFixV...)
		r.static[catExteriorH] = append(r.static[catExteriorH], li.ExteriorH...)
		r.static[catExteriorV] = append(r.static[catExteriorV], li.ExteriorV...)
	}

	r.positions = glres.NewArrayBuffer()
	r.positions.Allocate(len(geom.Positions)*4, gl.Ptr(geom.Positions), gl.STATIC_DRAW)

	rowIdx := glres.NewElementBuffer()
	rowIdx.Allocate(len(geom.RowIndices)*4, gl.Ptr(geom.RowIndices), gl.STATIC_DRAW)
	colIdx := glres.NewElementBuffer()
	colIdx.Allocate(len(geom.ColIndices)*4, gl.Ptr(geom.ColIndices), gl.STATIC_DRAW)

	rowMajor := [numCategories]bool{
		catBlocks: true, catRingFixH: true, catExteriorH: true,
	}
	for c := 0; c < numCategories; c++ {
		idx := colIdx
		if rowMajor[c] {
			idx = rowIdx
		}
		// Room for every level's instances plus one level of caps.
		capacity := len(r.static[c]) + len(r.levels[0].Cap)
		r.setupCategory(&r.cats[c], idx, capacity)
	}
	// The categories hold their own references now.
	rowIdx.Release()
	colIdx.Release()

	logger.Info("clipmap renderer created",
		zap.Int("rank", cfg.Rank),
		zap.Int("levels", cfg.Levels),
		zap.Int("stripStride", cfg.StripStride()),
		zap.Int32("texResolution", store.Resolution()),
		zap.Bool("levelCulling", cfg.LevelCulling),
		zap.Bool("anchorViewer", cfg.AnchorViewer),
		zap.Bool("drawExteriors", cfg.DrawExteriors))

	return r, nil
}

// setupCategory records the category's vertex layout into a fresh VAO:
// the shared position grid on attribute 0 and the packed per-instance
// attributes on 1..6 with divisor 1.
func (r *Renderer) setupCategory(cat *category, indices *glres.Buffer, capacity int) {
	cat.vao = glres.NewVertexArray()
	cat.vao.Bind()

	r.positions.Bind()
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)

	cat.instances = glres.NewArrayBuffer()
	cat.instances.Allocate(capacity*InstanceFloats*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(InstanceFloats * 4)
	layout := []struct {
		loc    uint32
		size   int32
		offset uintptr
	}{
		{1, 2, 0},      // iPositionOffset
		{2, 2, 2 * 4},  // iBlockScale
		{3, 2, 4 * 4},  // iTexOffset
		{4, 2, 6 * 4},  // iTexScale
		{5, 1, 8 * 4},  // iLod
		{6, 4, 9 * 4},  // iColor
	}
	for _, a := range layout {
		gl.EnableVertexAttribArray(a.loc)
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, stride, a.offset)
		gl.VertexAttribDivisor(a.loc, 1)
	}

	cat.indices = indices.Retain()
	cat.indices.Bind()

	cat.vao.Unbind()
}

// framePlan is the per-frame state threaded through cull, upload and
// dispatch. It never outlives the Draw call that computed it.
type framePlan struct {
	currentLevel int
	anchor       math.Vec2
	model        math.Mat4
	gridOffsets  [MaxLevels * 2]float32
}

// plan runs level selection, anchor correction and per-level grid
// offset computation for one frame.
func (r *Renderer) plan(f *scene.Frame) framePlan {
	p := framePlan{
		currentLevel: SelectLevel(r.cfg, f.CameraPosition.Y),
		model:        math.Identity(),
	}
	if r.cfg.AnchorViewer {
		p.anchor = snapAnchor(r.cfg, f.CameraPosition.XZ())
		p.model = math.Translate(p.anchor.X, 0, p.anchor.Y)
	}

	// Texture window shift per level: anchor position expressed in that
	// level's layer span. Repeat wrapping makes it toroidal.
	for level := 0; level < r.cfg.Levels; level++ {
		span := float32(r.cfg.StripStride()+1) * r.cfg.LevelScale(level)
		p.gridOffsets[level*2] = p.anchor.X / span
		p.gridOffsets[level*2+1] = p.anchor.Y / span
	}
	return p
}

// upload filters each category against the current level and rewrites
// its instance buffer. Caps join the block category only when culling
// opens a hole at the center.
func (r *Renderer) upload(p *framePlan) {
	total, drawn, capsAdded := 0, 0, 0
	for c := 0; c < numCategories; c++ {
		total += len(r.static[c])

		var caps []Instance
		if c == catBlocks && r.cfg.LevelCulling {
			caps = r.levels[p.currentLevel].Cap
			capsAdded = len(caps)
		}
		packed := cullCategory(r.static[c], caps, p.currentLevel, r.cfg.LevelCulling)

		cat := &r.cats[c]
		cat.count = int32(len(packed) / InstanceFloats)
		drawn += int(cat.count)
		if len(packed) > 0 {
			cat.instances.Update(0, len(packed)*4, gl.Ptr(packed))
		}
	}

	r.stats.Instances = drawn
	r.stats.Culled = total - (drawn - capsAdded)
}

// Update implements scene.Node. All clipmap work happens in Draw so no
// state leaks between the two call sites; Update only validates input.
func (r *Renderer) Update(f *scene.Frame) error {
	if f == nil {
		return fmt.Errorf("clipmap: nil frame")
	}
	return nil
}

// Draw implements scene.Node: selects the level for the viewer height,
// recomputes anchoring and grid offsets, re-uploads the culled instance
// sets and dispatches one instanced draw per non-empty category.
func (r *Renderer) Draw(f *scene.Frame) error {
	if f == nil {
		return fmt.Errorf("clipmap: nil frame")
	}

	p := r.plan(f)
	r.upload(&p)

	r.program.Use()
	r.store.Bind(0)
	r.program.SetInt("uHeightTex", 0)

	model := f.Model.Mul(p.model)
	r.program.SetMat4("uModel", &model)
	viewProj := f.ViewProj
	r.program.SetMat4("uViewProj", &viewProj)
	r.program.SetVec2Array("uGridOffset", p.gridOffsets[:])
	r.program.SetFloat("uTexelWorld",
		float32(r.cfg.StripStride()+1)*r.cfg.BlockUnit/float32(r.store.Resolution()))

	r.program.SetVec3("uLightDir", f.Light.WorldDirection)
	r.program.SetVec3("uAmbient", f.Light.Ambient)
	r.program.SetVec3("uDiffuse", f.Light.Diffuse)
	r.program.SetVec3("uCameraPos", f.CameraPosition)
	r.program.SetInt("uColorMode", boolInt32(r.debugTint))

	gl.Enable(gl.PRIMITIVE_RESTART)
	gl.PrimitiveRestartIndex(RestartIndex)

	draws := 0
	for c := 0; c < numCategories; c++ {
		if c == catExteriorH || c == catExteriorV {
			// Exterior skirts are generated and uploaded every frame
			// but dispatch stays behind the config switch.
			if !r.cfg.DrawExteriors {
				continue
			}
		}
		cat := &r.cats[c]
		if cat.count == 0 {
			continue
		}
		cat.vao.Bind()
		gl.DrawElementsInstanced(gl.TRIANGLE_STRIP, int32(r.geom.IndexCount()),
			gl.UNSIGNED_INT, nil, cat.count)
		draws++
	}
	gl.BindVertexArray(0)
	gl.Disable(gl.PRIMITIVE_RESTART)

	r.stats.CurrentLevel = p.currentLevel
	r.stats.DrawCalls = draws
	return nil
}

func boolInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// SetDebugTint switches fragment shading between lit terrain and
// per-category tint colors.
func (r *Renderer) SetDebugTint(on bool) {
	r.debugTint = on
}

// Reload re-samples every elevation layer from a new source.
func (r *Renderer) Reload(src heightfield.Source) error {
	return r.store.Fill(src)
}

// Stats returns the last frame's counters.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Config returns the renderer's immutable configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Close releases every GPU resource the renderer holds.
func (r *Renderer) Close() {
	for c := range r.cats {
		cat := &r.cats[c]
		if cat.vao != nil {
			cat.vao.Release()
		}
		if cat.instances != nil {
			cat.instances.Release()
		}
		if cat.indices != nil {
			cat.indices.Release()
		}
	}
	if r.positions != nil {
		r.positions.Release()
	}
	if r.store != nil {
		r.store.Release()
	}
	if r.program != nil {
		r.program.Delete()
	}
	logger.Debug("clipmap renderer closed")
}
