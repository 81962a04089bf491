// Package panorama defines the contract between the viewer core and the
// adapters that turn a panorama description into textured meshes.
package panorama

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/engine/model"
	"github.com/Faultbox/panosphere/internal/engine/texture"
	"github.com/Faultbox/panosphere/internal/logger"
)

// SphereRadius is the base radius of panorama meshes in world units.
const SphereRadius float32 = 10

// Source is a panorama description accepted by an adapter. Each adapter
// defines its own concrete source types.
type Source interface {
	// Kind names the source form, for diagnostics.
	Kind() string
}

// TextureData is the result of loading a panorama. The caller owns it until it
// is bound to a mesh with SetTexture or released with DisposeTexture.
type TextureData struct {
	Panorama Source
	Textures []*texture.Texture
}

// Material is the per-face render state of a mesh.
type Material struct {
	Map         *texture.Texture
	Opacity     float32
	Transparent bool
}

// Mesh is panorama geometry with one material per group.
type Mesh struct {
	Geometry  *model.Mesh
	Materials []*Material
}

// Adapter loads one panorama format and prepares meshes for it.
type Adapter interface {
	SupportsTransition() bool
	SupportsPreload() bool
	LoadTexture(ctx context.Context, src Source) (*TextureData, error)
	CreateMesh(scale float32) *Mesh
	SetTexture(mesh *Mesh, data *TextureData)
	SetTextureOpacity(mesh *Mesh, opacity float32)
	DisposeTexture(data *TextureData)
}

// ImageLoader fetches and decodes a single image, reporting progress in [0,1].
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string, onProgress func(float64)) (image.Image, error)
}

// Viewer is what adapters need from the host viewer.
type Viewer interface {
	Fisheye() bool
	SetProgress(p float64)
	ImageLoader() ImageLoader
	TextureBackend() texture.Backend
	Limits() texture.Limits
	Logger() *zap.Logger
}

// Host is a plain Viewer implementation for embedding and tools.
type Host struct {
	Loader     ImageLoader
	Backend    texture.Backend
	TexLimits  texture.Limits
	Log        *zap.Logger
	FisheyeOn  bool
	OnProgress func(p float64)
}

// Fisheye reports whether fisheye rendering is enabled.
func (h *Host) Fisheye() bool { return h.FisheyeOn }

// SetProgress forwards loading progress to OnProgress, if set.
func (h *Host) SetProgress(p float64) {
	if h.OnProgress != nil {
		h.OnProgress(p)
	}
}

// ImageLoader returns the image loader.
func (h *Host) ImageLoader() ImageLoader { return h.Loader }

// TextureBackend returns the texture backend.
func (h *Host) TextureBackend() texture.Backend { return h.Backend }

// Limits returns the texture limits.
func (h *Host) Limits() texture.Limits { return h.TexLimits }

// Logger returns the host logger, or a no-op logger.
func (h *Host) Logger() *zap.Logger {
	return logger.Or(h.Log)
}
