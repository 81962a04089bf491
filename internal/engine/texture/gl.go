package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLBackend uploads textures to the current OpenGL context.
// All calls must happen on the goroutine that owns the context.
type GLBackend struct {
	Mipmaps bool
}

// Upload creates a GL_TEXTURE_2D from img.
func (b GLBackend) Upload(img *image.RGBA) (uint32, error) {
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("glGenTextures returned no name")
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	minFilter := int32(gl.LINEAR)
	if b.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// Clamp so cube edges do not bleed into each other.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("texture upload %dx%d: GL error 0x%x", w, h, code)
	}
	return tex, nil
}

// Delete releases a texture created by Upload.
func (GLBackend) Delete(handle uint32) {
	gl.DeleteTextures(1, &handle)
}

// GLLimits queries the current context for its texture size limit.
// maxCanvasWidth is passed through unchanged.
func GLLimits(maxCanvasWidth int) Limits {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return Limits{MaxTextureWidth: int(size), MaxCanvasWidth: maxCanvasWidth}
}
