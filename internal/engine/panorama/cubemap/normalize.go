package cubemap

import (
	"fmt"
	"image"
	gomath "math"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/panosphere/internal/engine/texture"
)

// Normalizer turns decoded face images into textures the renderer can hold.
type Normalizer struct {
	Limits  texture.Limits
	Backend texture.Backend
	Log     *zap.Logger
}

// Normalize warns about non-square faces, downsizes images wider than the
// texture limit to the canvas width, and uploads the result.
func (n *Normalizer) Normalize(name string, img image.Image) (*texture.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("face %s: empty image", name)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != h {
		n.Log.Warn("invalid base image, the width should equal the height",
			zap.String("face", name), zap.Int("width", w), zap.Int("height", h))
	}

	if limit := n.Limits.MaxTextureWidth; limit > 0 && w > limit {
		scaled := Downscale(img, n.Limits.CanvasWidth())
		n.Log.Debug("face downscaled",
			zap.String("face", name),
			zap.Int("from", w),
			zap.Int("to", scaled.Bounds().Dx()))
		img = scaled
	}

	return texture.New(n.Backend, name, img)
}

// Downscale renders img into a new buffer targetWidth wide, keeping the
// aspect ratio.
func Downscale(img image.Image, targetWidth int) *image.RGBA {
	b := img.Bounds()
	ratio := float64(targetWidth) / float64(b.Dx())
	w := max(1, int(gomath.Round(float64(b.Dx())*ratio)))
	h := max(1, int(gomath.Round(float64(b.Dy())*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
