// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowStats  bool `yaml:"show_stats"` // stats in window title
}

// TerrainConfig holds geometry clipmap settings.
type TerrainConfig struct {
	// Rank is the log2 parameter controlling the strip stride:
	// each clipmap level spans 2^rank - 1 vertices per edge.
	Rank int `yaml:"rank"`
	// Levels is the number of nested clipmap rings.
	Levels int `yaml:"levels"`
	// BlockUnit is the world-space size of one quad at the finest level.
	BlockUnit float32 `yaml:"block_unit"`
	// HeightGain scales viewer altitude when selecting the coarsest
	// level rendered near the viewer.
	HeightGain float32 `yaml:"height_gain"`
	// TexResolution is the requested per-layer elevation texture size.
	TexResolution int `yaml:"tex_resolution"`

	LevelCulling   bool `yaml:"level_culling"`
	AnchorViewer   bool `yaml:"anchor_viewer"`
	DrawExteriors  bool `yaml:"draw_exteriors"`

	// Heightmap is an optional path to a grayscale heightmap image.
	// When empty, a seeded procedural source is used.
	Heightmap string  `yaml:"heightmap"`
	Seed      int64   `yaml:"seed"`
	Amplitude float32 `yaml:"amplitude"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	FOV       float32 `yaml:"fov"` // degrees
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	MoveSpeed float32 `yaml:"move_speed"`
	LookSpeed float32 `yaml:"look_speed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowStats:  false,
		},
		Terrain: TerrainConfig{
			Rank:          8,
			Levels:        6,
			BlockUnit:     1.0,
			HeightGain:    2.5,
			TexResolution: 256,
			LevelCulling:  false,
			AnchorViewer:  true,
			DrawExteriors: false,
			Seed:          1,
			Amplitude:     60.0,
		},
		Camera: CameraConfig{
			FOV:       60.0,
			Near:      0.5,
			Far:       4096.0,
			MoveSpeed: 40.0,
			LookSpeed: 0.003,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
