package cubemap

import (
	gomath "math"

	"github.com/Faultbox/panosphere/internal/engine/model"
	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/pkg/math"
)

// CreateMesh builds an inward-facing cube of edge 2*SphereRadius*scale with
// one untextured material per face, in native face order.
// A non-positive scale means 1.
func (a *Adapter) CreateMesh(scale float32) *panorama.Mesh {
	if scale <= 0 {
		scale = 1
	}
	size := panorama.SphereRadius * 2 * scale

	geometry := model.BuildBox(size, size, size)
	geometry.Transform(math.Scale(1, 1, -1))

	materials := make([]*panorama.Material, FaceCount)
	for i := range materials {
		materials[i] = &panorama.Material{Opacity: 1}
	}

	return &panorama.Mesh{Geometry: geometry, Materials: materials}
}

// SetTexture binds the six textures of data to the mesh materials. The texture
// previously bound to a material is disposed. With FlipTopBottom, the top and
// bottom textures are rotated half a turn about their center.
func (a *Adapter) SetTexture(mesh *panorama.Mesh, data *panorama.TextureData) {
	for i := 0; i < FaceCount; i++ {
		tex := data.Textures[i]

		if a.opts.FlipTopBottom && (Face(i) == Top || Face(i) == Bottom) {
			tex.Center = math.Vec2{X: 0.5, Y: 0.5}
			tex.Rotation = gomath.Pi
		}

		mat := mesh.Materials[i]
		if mat.Map != nil && mat.Map != tex {
			mat.Map.Dispose()
		}
		mat.Map = tex
	}
}

// SetTextureOpacity sets the opacity of every face. Materials are only marked
// transparent below full opacity.
func (a *Adapter) SetTextureOpacity(mesh *panorama.Mesh, opacity float32) {
	for _, mat := range mesh.Materials {
		mat.Opacity = opacity
		mat.Transparent = opacity < 1
	}
}

// DisposeTexture releases every texture of data. Callers must not dispose the
// same data twice or dispose data still bound to a mesh they keep using.
func (a *Adapter) DisposeTexture(data *panorama.TextureData) {
	if data == nil {
		return
	}
	for _, tex := range data.Textures {
		if tex != nil {
			tex.Dispose()
		}
	}
}
