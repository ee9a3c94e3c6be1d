// heightview - A graphical tool for previewing and tuning procedural
// terrain heightmaps before feeding them to the geoview viewer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/geoclip/internal/engine/heightfield"
	"github.com/Faultbox/geoclip/internal/engine/ui"
)

const previewRes = 512

func main() {
	runtime.LockOSThread()

	seed := flag.Int64("seed", 1, "initial noise seed")
	outPath := flag.String("out", "terrain.png", "default export path")
	flag.Parse()

	app, err := NewApp(*seed, *outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app.Run()
}

// App holds the heightmap preview application state.
type App struct {
	backend *ui.Backend

	// Noise parameters edited by the widgets.
	seed        int32
	amplitude   float32
	octaves     int32
	persistence float32
	lacunarity  float32
	world       float32

	// Export state
	outPath   string
	exportRes int32
	statusMsg string

	// Preview state
	heights []float32
	texture *backend.Texture
	zoom    float32
	dirty   bool
}

// NewApp creates the application window and generates the initial
// preview.
func NewApp(seed int64, outPath string) (*App, error) {
	app := &App{
		seed:        int32(seed),
		amplitude:   60,
		octaves:     5,
		persistence: 0.5,
		lacunarity:  2.0,
		world:       8192,
		outPath:     outPath,
		exportRes:   1024,
		zoom:        1.0,
		dirty:       true,
	}

	b, err := ui.NewBackend("Heightmap Preview", 900, 640)
	if err != nil {
		return nil, err
	}
	app.backend = b

	return app, nil
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// source builds a generator from the current widget values.
func (app *App) source() *heightfield.Procedural {
	src := heightfield.NewProcedural(int64(app.seed), app.amplitude)
	src.Octaves = int(app.octaves)
	src.Persistence = app.persistence
	src.Lacunarity = app.lacunarity
	return src
}

// regenerate samples the noise over one world repetition and uploads
// the result as a grayscale preview texture.
func (app *App) regenerate() {
	src := app.source()
	step := app.world / previewRes
	origin := -app.world / 2
	app.heights = src.Region(previewRes, origin, origin, step)

	rgba := image.NewRGBA(image.Rect(0, 0, previewRes, previewRes))
	scale := float32(0.5) / app.amplitude
	for i, h := range app.heights {
		v := h*scale + 0.5
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		g := uint8(v * 255)
		rgba.Pix[i*4+0] = g
		rgba.Pix[i*4+1] = g
		rgba.Pix[i*4+2] = g
		rgba.Pix[i*4+3] = 255
	}

	app.texture = backend.NewTextureFromRgba(rgba)
	app.dirty = false
}

// export writes the current parameters out as a 16-bit grayscale PNG
// at the configured export resolution.
func (app *App) export() {
	src := app.source()
	res := int(app.exportRes)
	step := app.world / float32(res)
	origin := -app.world / 2
	heights := src.Region(res, origin, origin, step)

	img := image.NewGray16(image.Rect(0, 0, res, res))
	scale := float32(0.5) / app.amplitude
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			v := heights[y*res+x]*scale + 0.5
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	f, err := os.Create(app.outPath)
	if err != nil {
		app.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		app.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return
	}
	app.statusMsg = fmt.Sprintf("Wrote %s (%dx%d)", app.outPath, res, res)
}

// render draws the UI each frame.
func (app *App) render() {
	if app.dirty {
		app.regenerate()
	}

	workX, workY, workW, workH := app.backend.GetViewport()
	const controlsWidth = float32(300)
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - noise controls
	imgui.SetNextWindowPos(imgui.NewVec2(workX, workY))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, workH))
	if imgui.BeginV("Noise", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	// Right panel - preview image
	imgui.SetNextWindowPos(imgui.NewVec2(workX+controlsWidth, workY))
	imgui.SetNextWindowSize(imgui.NewVec2(workW-controlsWidth, workH))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()
}

// renderControls renders the parameter widgets and export actions.
func (app *App) renderControls() {
	changed := false

	if imgui.InputInt("Seed", &app.seed) {
		changed = true
	}
	if imgui.SliderFloatV("Amplitude", &app.amplitude, 1, 500, "%.0f", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderIntV("Octaves", &app.octaves, 1, 10, "%d", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderFloatV("Persistence", &app.persistence, 0.1, 0.9, "%.2f", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderFloatV("Lacunarity", &app.lacunarity, 1.5, 3.5, "%.2f", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderFloatV("World size", &app.world, 1024, 32768, "%.0f", imgui.SliderFlagsNone) {
		changed = true
	}
	if changed {
		app.dirty = true
	}

	imgui.Separator()

	if imgui.Button("Randomize seed") {
		next := int64(app.seed)*6364136223846793 + 1442695041
		app.seed = int32(next % 2147483647)
		if app.seed < 0 {
			app.seed = -app.seed
		}
		app.dirty = true
	}

	imgui.Separator()

	imgui.Text("Export")
	imgui.InputTextWithHint("##outpath", "output path", &app.outPath, 0, nil)
	imgui.SliderIntV("Resolution", &app.exportRes, 256, 4096, "%d", imgui.SliderFlagsNone)
	if imgui.Button("Save PNG") {
		app.export()
	}

	if app.statusMsg != "" {
		imgui.Separator()
		imgui.TextWrapped(app.statusMsg)
	}

	if len(app.heights) > 0 {
		imgui.Separator()
		min, max := app.heights[0], app.heights[0]
		for _, h := range app.heights {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
		imgui.Text(fmt.Sprintf("Range: %.1f .. %.1f", min, max))
	}
}

// renderPreview renders the zoomable grayscale preview.
func (app *App) renderPreview() {
	if app.texture == nil {
		imgui.TextDisabled("No preview")
		return
	}

	imgui.SliderFloatV("Zoom", &app.zoom, 0.25, 4.0, "%.2fx", imgui.SliderFlagsNone)
	imgui.Separator()

	w := float32(previewRes) * app.zoom
	h := float32(previewRes) * app.zoom

	avail := imgui.ContentRegionAvail()
	startX := imgui.CursorPosX()
	startY := imgui.CursorPosY()
	if w < avail.X {
		imgui.SetCursorPosX(startX + (avail.X-w)/2)
	}
	if h < avail.Y {
		imgui.SetCursorPosY(startY + (avail.Y-h)/2)
	}

	imgui.ImageWithBgV(
		app.texture.ID,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 0),
		imgui.NewVec2(1, 1),
		imgui.NewVec4(0.2, 0.2, 0.2, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}
