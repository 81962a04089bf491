// cubetool is a CLI utility for checking and previewing cube panoramas.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "check":
		err = cmdCheck(cfg, rest)
	case "net":
		err = cmdNet(cfg, rest)
	case "resolutions", "res":
		err = cmdResolutions(cfg, rest)
	case "switch":
		err = cmdSwitch(cfg, rest)
	case "gpu":
		err = cmdGPU(cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cubetool - cube panorama utility

Usage:
  cubetool [flags] <command> [arguments]

Commands:
  check <descriptor>...        Validate and load descriptors, print face sizes
  net <descriptor> <out.png>   Write the six faces as an unfolded cross
  resolutions                  List resolutions from the config file
  switch <id> [from]           Switch between configured resolutions
  gpu <descriptor>             Upload the faces to an OpenGL context

Descriptors are YAML or JSON files holding either a list of six images
(left, front, right, back, top, bottom) or a map keyed by face name.
Relative image paths are searched next to the descriptor, then in -root.

Flags:
  -config <file>     Config file (default: ./panosphere.yaml)
  -root <dirs>       Comma-separated image roots
  -max-texture <px>  Maximum texture width
  -flip              Rotate top and bottom faces by 180 degrees
  -fisheye           Enable fisheye mode
  -debug             Debug logging

Examples:
  cubetool check pano.yaml
  cubetool -flip net pano.yaml cross.png
  cubetool -config tour.yaml switch hd sd`)
}
