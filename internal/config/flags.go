package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFlip       = flag.Bool("flip", false, "Rotate top and bottom cube faces by 180 degrees")
	flagFisheye    = flag.Bool("fisheye", false, "Enable fisheye rendering mode")
	flagMaxTexture = flag.Int("max-texture", 0, "Maximum texture width in pixels")
	flagRoots      = flag.String("root", "", "Comma-separated directories searched for face images")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFlip {
		cfg.Cubemap.FlipTopBottom = true
	}
	if *flagFisheye {
		cfg.Viewer.Fisheye = true
	}
	if *flagMaxTexture > 0 {
		cfg.Textures.MaxTextureWidth = *flagMaxTexture
	}
	if *flagRoots != "" {
		var roots []string
		for _, r := range strings.Split(*flagRoots, ",") {
			if r = strings.TrimSpace(r); r != "" {
				roots = append(roots, r)
			}
		}
		cfg.Assets.Roots = roots
	}
}
