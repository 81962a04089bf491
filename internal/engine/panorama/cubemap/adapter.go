package cubemap

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/logger"
)

// Info holds the adapter-level flags. Cube panoramas span six files, so there
// is no single file to offer for download.
var Info = panorama.Info{ID: "cubemap", SupportsDownload: false}

// Options configures the adapter. They are fixed at construction.
type Options struct {
	// FlipTopBottom rotates the top and bottom faces by 180 degrees, for
	// sources captured with the opposite orientation convention.
	FlipTopBottom bool
}

// Adapter loads cube panoramas.
type Adapter struct {
	viewer panorama.Viewer
	opts   Options
	log    *zap.Logger
}

var _ panorama.Adapter = (*Adapter)(nil)

// New creates a cubemap adapter for v.
func New(v panorama.Viewer, opts Options) *Adapter {
	return &Adapter{
		viewer: v,
		opts:   opts,
		log:    logger.Or(v.Logger()).Named(Info.ID),
	}
}

// Factory returns a registry factory building adapters with opts.
func Factory(opts Options) panorama.Factory {
	return func(v panorama.Viewer) panorama.Adapter {
		return New(v, opts)
	}
}

// Options returns the adapter options.
func (a *Adapter) Options() Options { return a.opts }

// SupportsTransition reports that cube panoramas can cross-fade.
func (a *Adapter) SupportsTransition() bool { return true }

// SupportsPreload reports that cube panoramas can be loaded ahead of time.
func (a *Adapter) SupportsPreload() bool { return true }

// LoadTexture validates src, loads its six faces and returns their textures in
// native order. Validation errors are returned before any image is requested.
func (a *Adapter) LoadTexture(ctx context.Context, src panorama.Source) (*panorama.TextureData, error) {
	faces, err := Validate(src)
	if err != nil {
		return nil, err
	}

	if a.viewer.Fisheye() {
		a.log.Warn("fisheye effect with cubemap texture can generate distortion")
	}

	textures, err := a.loadFaces(ctx, faces, a.viewer.SetProgress)
	if err != nil {
		return nil, err
	}

	a.log.Debug("cubemap loaded", zap.Strings("faces", faces[:]), zap.Int("size", textures[0].Width()))
	return &panorama.TextureData{Panorama: src, Textures: textures[:]}, nil
}

func (a *Adapter) normalizer() *Normalizer {
	return &Normalizer{
		Limits:  a.viewer.Limits(),
		Backend: a.viewer.TextureBackend(),
		Log:     a.log,
	}
}
