// Package viewer holds the panorama stage: the current mesh, its textures and
// the switch from one panorama to the next.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/logger"
)

// DefaultFadeSteps is the number of opacity steps of a cross-fade.
const DefaultFadeSteps = 10

var (
	ErrClosed             = errors.New("stage is closed")
	ErrPreloadUnsupported = errors.New("adapter does not support preload")
)

// Config holds stage configuration.
type Config struct {
	// Scale is passed to Adapter.CreateMesh.
	Scale float32

	// OnLoader is called with true before a load that shows the loader and
	// with false once it ends.
	OnLoader func(visible bool)
	// OnFrame is called after each cross-fade step so the host can redraw.
	OnFrame func(opacity float32)

	Log *zap.Logger
}

// SetOptions controls a single panorama switch.
type SetOptions struct {
	// Transition cross-fades from the current panorama when the adapter
	// supports it.
	Transition bool
	ShowLoader bool
	// FadeSteps overrides DefaultFadeSteps when positive.
	FadeSteps int
}

// Stage shows one panorama at a time through an adapter.
// A Stage is not safe for concurrent use.
type Stage struct {
	adapter panorama.Adapter
	config  Config
	log     *zap.Logger

	mesh    *panorama.Mesh
	data    *panorama.TextureData
	current panorama.Source

	listeners []func(panorama.Source)
	closed    bool
}

// New creates an empty stage. The mesh is created on the first panorama.
func New(adapter panorama.Adapter, cfg Config) *Stage {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	return &Stage{
		adapter: adapter,
		config:  cfg,
		log:     logger.Or(cfg.Log).Named("viewer"),
	}
}

// OnPanoramaLoaded registers fn to be called after every successful switch.
func (s *Stage) OnPanoramaLoaded(fn func(src panorama.Source)) {
	s.listeners = append(s.listeners, fn)
}

// Panorama returns the panorama currently shown, or nil.
func (s *Stage) Panorama() panorama.Source { return s.current }

// Mesh returns the mesh currently shown, or nil.
func (s *Stage) Mesh() *panorama.Mesh { return s.mesh }

// TextureData returns the textures currently bound to the mesh, or nil.
func (s *Stage) TextureData() *panorama.TextureData { return s.data }

// SetPanorama loads src and shows it. If loading fails the previous panorama
// stays in place.
func (s *Stage) SetPanorama(ctx context.Context, src panorama.Source, opts SetOptions) error {
	if s.closed {
		return ErrClosed
	}

	if opts.ShowLoader && s.config.OnLoader != nil {
		s.config.OnLoader(true)
		defer s.config.OnLoader(false)
	}

	data, err := s.adapter.LoadTexture(ctx, src)
	if err != nil {
		s.log.Error("failed to load panorama", zap.Error(err))
		return fmt.Errorf("loading panorama: %w", err)
	}

	if opts.Transition && s.mesh != nil && s.adapter.SupportsTransition() {
		steps := opts.FadeSteps
		if steps <= 0 {
			steps = DefaultFadeSteps
		}
		s.crossFade(data, steps)
	} else {
		if s.mesh == nil {
			s.mesh = s.adapter.CreateMesh(s.config.Scale)
		}
		// SetTexture releases the textures it replaces.
		s.adapter.SetTexture(s.mesh, data)
	}

	s.data = data
	s.current = src
	s.log.Debug("panorama loaded", zap.String("kind", src.Kind()), zap.Bool("transition", opts.Transition))

	for _, fn := range s.listeners {
		fn(src)
	}
	return nil
}

// crossFade fades a new mesh in over the current one, then drops the old mesh
// and its textures.
func (s *Stage) crossFade(data *panorama.TextureData, steps int) {
	mesh := s.adapter.CreateMesh(s.config.Scale)
	s.adapter.SetTextureOpacity(mesh, 0)
	s.adapter.SetTexture(mesh, data)

	for i := 1; i <= steps; i++ {
		opacity := float32(i) / float32(steps)
		s.adapter.SetTextureOpacity(mesh, opacity)
		if s.config.OnFrame != nil {
			s.config.OnFrame(opacity)
		}
	}

	old := s.data
	s.mesh = mesh
	s.adapter.DisposeTexture(old)
}

// Preload loads src and releases it right away, warming the asset cache.
func (s *Stage) Preload(ctx context.Context, src panorama.Source) error {
	if s.closed {
		return ErrClosed
	}
	if !s.adapter.SupportsPreload() {
		return ErrPreloadUnsupported
	}
	data, err := s.adapter.LoadTexture(ctx, src)
	if err != nil {
		return fmt.Errorf("preloading panorama: %w", err)
	}
	s.adapter.DisposeTexture(data)
	return nil
}

// Close releases the current textures. The stage cannot be used afterwards.
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.data != nil {
		s.adapter.DisposeTexture(s.data)
	}
	s.data = nil
	s.mesh = nil
	s.current = nil
}
