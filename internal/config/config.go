// Package config handles viewer configuration loading and management.
package config

import "gopkg.in/yaml.v3"

// Config holds all viewer settings.
type Config struct {
	Viewer      ViewerConfig       `yaml:"viewer"`
	Textures    TexturesConfig     `yaml:"textures"`
	Cubemap     CubemapConfig      `yaml:"cubemap"`
	Assets      AssetsConfig       `yaml:"assets"`
	Logging     LoggingConfig      `yaml:"logging"`
	Resolutions []ResolutionConfig `yaml:"resolutions,omitempty"`
}

// ViewerConfig holds settings owned by the host viewer.
type ViewerConfig struct {
	Fisheye bool `yaml:"fisheye"`
}

// TexturesConfig holds texture size limits. Zero values are replaced by the
// renderer's own limits at runtime.
type TexturesConfig struct {
	MaxTextureWidth int `yaml:"max_texture_width"`
	MaxCanvasWidth  int `yaml:"max_canvas_width"`
}

// CubemapConfig holds cubemap adapter options.
type CubemapConfig struct {
	FlipTopBottom bool `yaml:"flip_top_bottom"`
}

// AssetsConfig holds image lookup settings.
type AssetsConfig struct {
	Roots   []string `yaml:"roots"`   // Directories searched for relative face references
	CacheMB int      `yaml:"cache_mb"` // Raw image byte cache budget, 0 disables caching
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ResolutionConfig describes one selectable panorama quality.
// Panorama is kept as a raw node and decoded by the adapter that owns it.
type ResolutionConfig struct {
	ID       string    `yaml:"id"`
	Label    string    `yaml:"label"`
	Panorama yaml.Node `yaml:"panorama"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Fisheye: false,
		},
		Textures: TexturesConfig{
			MaxTextureWidth: 4096,
			MaxCanvasWidth:  0,
		},
		Cubemap: CubemapConfig{
			FlipTopBottom: false,
		},
		Assets: AssetsConfig{
			Roots:   []string{"."},
			CacheMB: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Resolution returns the resolution with the given id, or nil.
func (c *Config) Resolution(id string) *ResolutionConfig {
	for i := range c.Resolutions {
		if c.Resolutions[i].ID == id {
			return &c.Resolutions[i]
		}
	}
	return nil
}
