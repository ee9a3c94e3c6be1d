// Package renderer owns global OpenGL state for the frame loop.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoclip/internal/engine/glres"
	"github.com/Faultbox/geoclip/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer loads the OpenGL function pointers and drives per-frame
// clear/viewport state. Scene content draws itself; this type only
// brackets the frame.
type Renderer struct {
	config    Config
	caps      glres.Caps
	wireframe bool
}

// New initializes OpenGL for the current context. Must be called after
// the context is created and current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		caps:   glres.QueryCaps(),
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int32("maxTextureSize", r.caps.MaxTextureSize),
		zap.Int32("maxArrayLayers", r.caps.MaxArrayLayers),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Sky color, matched by the terrain shader's fog.
	gl.ClearColor(0.55, 0.65, 0.78, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Caps returns the capabilities queried at initialization.
func (r *Renderer) Caps() glres.Caps {
	return r.caps
}

// Close logs shutdown; GL objects belong to their owners.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize updates the viewport after a window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current framebuffer size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// AspectRatio returns width over height.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe toggles polygon fill mode, handy for inspecting the
// clipmap tessellation.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Wireframe reports the current fill mode.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame before the buffer swap.
func (r *Renderer) End() {
}
