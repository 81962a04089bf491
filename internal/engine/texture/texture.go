package texture

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/Faultbox/panosphere/pkg/math"
)

// Backend creates and releases renderer texture objects.
type Backend interface {
	// Upload creates a texture object from tightly packed RGBA pixels.
	Upload(img *image.RGBA) (uint32, error)
	// Delete releases a texture object created by Upload.
	Delete(handle uint32)
}

// Limits describes the renderer's texture size limits.
type Limits struct {
	MaxTextureWidth int
	// MaxCanvasWidth caps the off-screen buffer used for downscaling.
	// Zero means the buffer may be as wide as MaxTextureWidth.
	MaxCanvasWidth int
}

// CanvasWidth returns the widest off-screen buffer usable for downscaling.
func (l Limits) CanvasWidth() int {
	if l.MaxCanvasWidth > 0 && l.MaxCanvasWidth < l.MaxTextureWidth {
		return l.MaxCanvasWidth
	}
	return l.MaxTextureWidth
}

// Texture is a renderer-resident texture built from a decoded image.
// Center and Rotation describe the UV transform applied when sampling.
type Texture struct {
	Name     string
	Image    *image.RGBA
	Center   math.Vec2
	Rotation float32 // radians, about Center

	handle   uint32
	backend  Backend
	disposed bool
}

// New uploads img through b and returns the resulting texture.
func New(b Backend, name string, img image.Image) (*Texture, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %s: empty image", name)
	}
	rgba := ToRGBA(img)
	handle, err := b.Upload(rgba)
	if err != nil {
		return nil, fmt.Errorf("texture %s: upload: %w", name, err)
	}
	return &Texture{
		Name:    name,
		Image:   rgba,
		handle:  handle,
		backend: b,
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.Image.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// Handle returns the backend texture object.
func (t *Texture) Handle() uint32 { return t.handle }

// Disposed reports whether Dispose has been called.
func (t *Texture) Disposed() bool { return t.disposed }

// Dispose releases the backend texture object. Calls after the first are ignored.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.backend.Delete(t.handle)
	t.handle = 0
}

// UVTransform returns the matrix mapping mesh UVs to texture UVs:
// a rotation by Rotation about Center.
func (t *Texture) UVTransform() math.Mat4 {
	if t.Rotation == 0 {
		return math.Identity()
	}
	return math.Translate(t.Center.X, t.Center.Y, 0).
		Mul(math.RotateZ(-t.Rotation)).
		Mul(math.Translate(-t.Center.X, -t.Center.Y, 0))
}

// Oriented returns the pixels as seen through UVTransform, sampled nearest.
// Without rotation the texture image itself is returned.
func (t *Texture) Oriented() *image.RGBA {
	if t.Rotation == 0 {
		return t.Image
	}
	w, h := t.Width(), t.Height()
	m := t.UVTransform()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			uv := m.TransformPoint([3]float32{
				(float32(x) + 0.5) / float32(w),
				(float32(y) + 0.5) / float32(h),
				0,
			})
			sx := clamp(int(gomath.Floor(float64(uv[0]*float32(w)))), 0, w-1)
			sy := clamp(int(gomath.Floor(float64(uv[1]*float32(h)))), 0, h-1)
			out.SetRGBA(x, y, t.Image.RGBAAt(sx, sy))
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
