package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in standard locations.
const FileName = "panosphere.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	if c.Textures.MaxTextureWidth < 0 {
		return fmt.Errorf("textures.max_texture_width must not be negative, got %d", c.Textures.MaxTextureWidth)
	}
	if c.Textures.MaxCanvasWidth < 0 {
		return fmt.Errorf("textures.max_canvas_width must not be negative, got %d", c.Textures.MaxCanvasWidth)
	}
	seen := make(map[string]bool, len(c.Resolutions))
	for i, r := range c.Resolutions {
		if r.ID == "" {
			return fmt.Errorf("resolutions[%d]: missing id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("resolutions[%d]: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Panosphere")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Panosphere")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "panosphere")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "panosphere")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
