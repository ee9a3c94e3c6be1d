// Package main is the interactive clipmap terrain viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoclip/internal/config"
	"github.com/Faultbox/geoclip/internal/engine/camera"
	"github.com/Faultbox/geoclip/internal/engine/clipmap"
	"github.com/Faultbox/geoclip/internal/engine/debug"
	"github.com/Faultbox/geoclip/internal/engine/heightfield"
	"github.com/Faultbox/geoclip/internal/engine/input"
	"github.com/Faultbox/geoclip/internal/engine/lighting"
	"github.com/Faultbox/geoclip/internal/engine/renderer"
	"github.com/Faultbox/geoclip/internal/engine/scene"
	"github.com/Faultbox/geoclip/internal/engine/window"
	"github.com/Faultbox/geoclip/internal/logger"
	"github.com/Faultbox/geoclip/pkg/math"
)

const windowTitle = "geoview"

// heightmapGridRes is the internal sample grid edge for image sources.
const heightmapGridRes = 1024

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.DefaultOptions(cfg.Logging.Level, cfg.Logging.LogFile)); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== geoclip viewer ===")

	if err := run(cfg); err != nil {
		logger.Fatal("viewer failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	rend, err := renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		return err
	}
	defer rend.Close()

	clipCfg := clipmap.Config{
		Rank:          cfg.Terrain.Rank,
		Levels:        cfg.Terrain.Levels,
		BlockUnit:     cfg.Terrain.BlockUnit,
		HeightGain:    cfg.Terrain.HeightGain,
		TexResolution: int32(cfg.Terrain.TexResolution),
		LevelCulling:  cfg.Terrain.LevelCulling,
		AnchorViewer:  cfg.Terrain.AnchorViewer,
		DrawExteriors: cfg.Terrain.DrawExteriors,
	}

	src, err := buildSource(cfg.Terrain, clipCfg)
	if err != nil {
		return err
	}

	terrain, err := clipmap.NewRenderer(clipCfg, src)
	if err != nil {
		return err
	}
	defer terrain.Close()

	root := scene.NewGroup("root")
	root.Add(terrain)

	cam := camera.NewFlyCamera()
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.LookSpeed = cfg.Camera.LookSpeed

	light := lighting.Default()

	in := input.New()
	win.SetRelativeMouse(true)

	shots := debug.NewScreenshots("screenshots", "geoview")
	captureRequested := false

	freq := float64(sdl.GetPerformanceFrequency())
	last := sdl.GetPerformanceCounter()
	var elapsed, statClock float64
	statFrames := 0

	for {
		if in.Update() {
			return nil
		}

		now := sdl.GetPerformanceCounter()
		dt := float64(now-last) / freq
		last = now
		elapsed += dt

		for _, e := range in.Events() {
			switch e.Type {
			case input.EventWindowResize:
				rend.Resize(e.Width, e.Height)
			case input.EventKeyDown:
				switch e.Key {
				case sdl.SCANCODE_ESCAPE:
					return nil
				case sdl.SCANCODE_TAB:
					win.SetRelativeMouse(!win.RelativeMouse())
				case sdl.SCANCODE_F1:
					cfg.Graphics.ShowStats = !cfg.Graphics.ShowStats
				case sdl.SCANCODE_F2:
					rend.SetWireframe(!rend.Wireframe())
				case sdl.SCANCODE_F3:
					terrain.SetDebugTint(true)
				case sdl.SCANCODE_F4:
					terrain.SetDebugTint(false)
				case sdl.SCANCODE_F5:
					captureRequested = true
				}
			case input.EventMouseMove:
				if win.RelativeMouse() {
					cam.HandleLook(float32(e.RelX), float32(e.RelY))
				}
			}
		}

		moveCamera(cam, in, float32(dt))

		view := cam.ViewMatrix()
		proj := math.Perspective(
			cfg.Camera.FOV*math32.Pi/180,
			rend.AspectRatio(),
			cfg.Camera.Near,
			cfg.Camera.Far,
		)

		frame := scene.NewFrame(view, proj, cam.Position, elapsed, dt)
		frame.Light = light.StateFor(view)

		rend.Begin()
		if err := root.Update(frame); err != nil {
			return err
		}
		if err := root.Draw(frame); err != nil {
			return err
		}
		rend.End()

		if captureRequested {
			captureRequested = false
			w, h := rend.Size()
			if path, err := shots.CaptureFrame(w, h); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}

		win.SwapBuffers()

		statFrames++
		statClock += dt
		if statClock >= 0.5 {
			if cfg.Graphics.ShowStats {
				s := terrain.Stats()
				win.SetTitle(fmt.Sprintf("%s | %.0f fps | level %d | %d instances | %d draws",
					windowTitle, float64(statFrames)/statClock,
					s.CurrentLevel, s.Instances, s.DrawCalls))
			} else {
				win.SetTitle(windowTitle)
			}
			statFrames = 0
			statClock = 0
		}
	}
}

// moveCamera maps held keys to fly-camera axes. Shift boosts speed.
func moveCamera(cam *camera.FlyCamera, in *input.Input, dt float32) {
	var forward, right, up float32
	if in.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if in.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if in.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if in.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if in.IsKeyHeld(sdl.SCANCODE_SPACE) {
		up++
	}
	if in.IsKeyHeld(sdl.SCANCODE_LCTRL) {
		up--
	}
	if in.IsKeyHeld(sdl.SCANCODE_LSHIFT) {
		dt *= 4
	}
	if forward != 0 || right != 0 || up != 0 {
		cam.HandleMovement(forward, right, up, dt)
	}
}

// buildSource picks the elevation source: a heightmap image when
// configured, otherwise seeded procedural noise. An image tiles over
// the coarsest level's footprint.
func buildSource(tc config.TerrainConfig, cc clipmap.Config) (heightfield.Source, error) {
	if tc.Heightmap == "" {
		logger.Info("procedural terrain",
			zap.Int64("seed", tc.Seed),
			zap.Float32("amplitude", tc.Amplitude))
		return heightfield.NewProcedural(tc.Seed, tc.Amplitude), nil
	}

	worldSize := float32(cc.StripStride()+1) * cc.LevelScale(cc.Levels-1)
	logger.Info("heightmap terrain",
		zap.String("path", tc.Heightmap),
		zap.Float32("worldSize", worldSize),
		zap.Float32("amplitude", tc.Amplitude))
	return heightfield.LoadImage(tc.Heightmap, heightmapGridRes, worldSize, tc.Amplitude)
}
