// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Editor   EditorConfig   `yaml:"editor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// EditorConfig holds painting defaults and session state worth restoring.
type EditorConfig struct {
	Variant      string  `yaml:"variant"` // "classic" or "slim"
	BrushColor   string  `yaml:"brush_color"`
	BrushSize    int     `yaml:"brush_size"`
	Hardness     float64 `yaml:"hardness"`
	Opacity      float64 `yaml:"opacity"`
	Symmetry     bool    `yaml:"symmetry"`
	LastSkinPath string  `yaml:"last_skin_path"`
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
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Editor: EditorConfig{
			Variant:    "classic",
			BrushColor: "#d96a3b",
			BrushSize:  1,
			Hardness:   1,
			Opacity:    1,
			Symmetry:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
