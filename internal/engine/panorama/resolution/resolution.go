// Package resolution switches a stage between several renditions of the same
// panorama and tracks which one is shown.
package resolution

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/logger"
	"github.com/Faultbox/panosphere/internal/viewer"
)

var (
	ErrMissingID = errors.New("missing resolution id")
	ErrUnknown   = errors.New("unknown resolution")
)

// Resolution is one rendition of a panorama.
type Resolution struct {
	ID       string
	Label    string
	Panorama panorama.Source
}

// Option is a resolution entry as offered to the user.
type Option struct {
	ID    string
	Label string
}

// Stage is the part of the viewer the switcher drives.
type Stage interface {
	Panorama() panorama.Source
	SetPanorama(ctx context.Context, src panorama.Source, opts viewer.SetOptions) error
}

// Options configures a Switcher.
type Options struct {
	// HideBadge disables the current id badge. Badges are shown by default.
	HideBadge bool
	// OnChange is called when the current resolution id changes. The id is
	// empty when the shown panorama matches no resolution.
	OnChange func(id string)
	Log      *zap.Logger
}

// Switcher tracks the resolution matching the stage's panorama.
type Switcher struct {
	stage       Stage
	opts        Options
	log         *zap.Logger
	resolutions []Resolution
	byID        map[string]Resolution
	current     string
}

// New creates a switcher for stage.
func New(stage Stage, opts Options) *Switcher {
	return &Switcher{
		stage: stage,
		opts:  opts,
		log:   logger.Or(opts.Log).Named("resolution"),
		byID:  make(map[string]Resolution),
	}
}

// SetResolutions replaces the available resolutions and refreshes the current
// one. On error the previous list is kept.
func (s *Switcher) SetResolutions(list []Resolution) error {
	byID := make(map[string]Resolution, len(list))
	for i, r := range list {
		if r.ID == "" {
			return fmt.Errorf("resolution %d: %w", i, ErrMissingID)
		}
		byID[r.ID] = r
	}

	s.resolutions = append([]Resolution(nil), list...)
	s.byID = byID
	s.PanoramaLoaded()
	return nil
}

// SetResolution shows the panorama of resolution id, without transition or
// loader.
func (s *Switcher) SetResolution(ctx context.Context, id string) error {
	r, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	s.log.Debug("switching resolution", zap.String("id", id))
	return s.stage.SetPanorama(ctx, r.Panorama, viewer.SetOptions{
		Transition: false,
		ShowLoader: false,
	})
}

// Resolution returns the current resolution id, empty if none matches.
func (s *Switcher) Resolution() string { return s.current }

// Options lists the resolutions in their configured order.
func (s *Switcher) Options() []Option {
	out := make([]Option, len(s.resolutions))
	for i, r := range s.resolutions {
		out[i] = Option{ID: r.ID, Label: r.Label}
	}
	return out
}

// Badge returns the current id, or an empty string when badges are disabled.
func (s *Switcher) Badge() string {
	if s.opts.HideBadge {
		return ""
	}
	return s.current
}

// PanoramaLoaded refreshes the current resolution from the stage panorama.
// It is meant to be registered as a stage listener.
func (s *Switcher) PanoramaLoaded() {
	shown := s.stage.Panorama()

	id := ""
	for _, r := range s.resolutions {
		if shown != nil && reflect.DeepEqual(shown, r.Panorama) {
			id = r.ID
			break
		}
	}

	if id == s.current {
		return
	}
	s.current = id
	s.log.Info("resolution changed", zap.String("id", id))
	if s.opts.OnChange != nil {
		s.opts.OnChange(id)
	}
}

// FromConfig builds resolutions from configuration entries, decoding each
// panorama node with decode.
func FromConfig(entries []config.ResolutionConfig, decode func(*yaml.Node) (panorama.Source, error)) ([]Resolution, error) {
	out := make([]Resolution, 0, len(entries))
	for _, e := range entries {
		src, err := decode(&e.Panorama)
		if err != nil {
			return nil, fmt.Errorf("resolution %s: %w", e.ID, err)
		}
		out = append(out, Resolution{ID: e.ID, Label: e.Label, Panorama: src})
	}
	return out, nil
}
