package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Terrain.Rank != 8 {
		t.Errorf("expected rank 8, got %d", cfg.Terrain.Rank)
	}
	if cfg.Terrain.Levels != 6 {
		t.Errorf("expected 6 levels, got %d", cfg.Terrain.Levels)
	}
	if cfg.Terrain.BlockUnit != 1.0 {
		t.Errorf("expected block unit 1.0, got %f", cfg.Terrain.BlockUnit)
	}
	if cfg.Terrain.HeightGain != 2.5 {
		t.Errorf("expected height gain 2.5, got %f", cfg.Terrain.HeightGain)
	}
	if cfg.Terrain.LevelCulling {
		t.Error("expected level culling to be off by default")
	}
	if !cfg.Terrain.AnchorViewer {
		t.Error("expected viewer anchoring to be on by default")
	}
	if cfg.Terrain.DrawExteriors {
		t.Error("expected exterior drawing to be off by default")
	}

	if cfg.Camera.FOV != 60.0 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "geoclip.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  show_stats: true

terrain:
  rank: 7
  levels: 8
  block_unit: 2.0
  height_gain: 3.0
  tex_resolution: 512
  level_culling: true
  draw_exteriors: true
  heightmap: "alps.png"
  seed: 42
  amplitude: 120.0

camera:
  fov: 75
  near: 1.0
  far: 8192.0
  move_speed: 80.0
  look_speed: 0.005

logging:
  level: "debug"
  log_file: "geoclip.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if !cfg.Graphics.ShowStats {
		t.Error("expected show_stats to be true")
	}

	if cfg.Terrain.Rank != 7 {
		t.Errorf("expected rank 7, got %d", cfg.Terrain.Rank)
	}
	if cfg.Terrain.Levels != 8 {
		t.Errorf("expected 8 levels, got %d", cfg.Terrain.Levels)
	}
	if cfg.Terrain.BlockUnit != 2.0 {
		t.Errorf("expected block unit 2.0, got %f", cfg.Terrain.BlockUnit)
	}
	if cfg.Terrain.TexResolution != 512 {
		t.Errorf("expected tex resolution 512, got %d", cfg.Terrain.TexResolution)
	}
	if !cfg.Terrain.LevelCulling {
		t.Error("expected level culling to be true")
	}
	if !cfg.Terrain.DrawExteriors {
		t.Error("expected draw_exteriors to be true")
	}
	if cfg.Terrain.Heightmap != "alps.png" {
		t.Errorf("expected heightmap alps.png, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Terrain.Seed)
	}

	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Camera.FOV)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "geoclip.log" {
		t.Errorf("expected log file geoclip.log, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "geoclip.yaml")

	yamlContent := `
terrain:
  rank: 6
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Rank != 6 {
		t.Errorf("expected rank 6, got %d", cfg.Terrain.Rank)
	}
	// Everything not mentioned keeps the default.
	if cfg.Terrain.Levels != 6 {
		t.Errorf("expected default levels 6, got %d", cfg.Terrain.Levels)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "geoclip.yaml")

	cfg := Default()
	cfg.Terrain.Rank = 9
	cfg.Terrain.Heightmap = "volcano.png"
	cfg.Graphics.Width = 2560

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Terrain.Rank != 9 {
		t.Errorf("expected rank 9 after round trip, got %d", loaded.Terrain.Rank)
	}
	if loaded.Terrain.Heightmap != "volcano.png" {
		t.Errorf("expected heightmap volcano.png, got %s", loaded.Terrain.Heightmap)
	}
	if loaded.Graphics.Width != 2560 {
		t.Errorf("expected width 2560, got %d", loaded.Graphics.Width)
	}
}
