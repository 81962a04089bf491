// Package texture provides face image decoding and renderer texture resources.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode decodes an image, using the reference's extension to pick TGA
// (which has no magic number) and content sniffing for everything else.
func Decode(ref string, data []byte) (image.Image, error) {
	ext := strings.ToLower(path.Ext(stripQuery(ref)))
	if ext == ".tga" {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", ref, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ref, err)
	}
	return img, nil
}

// ToRGBA returns img as a tightly packed *image.RGBA with a zero origin,
// copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) && rgba.Stride == 4*rgba.Bounds().Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func stripQuery(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}
