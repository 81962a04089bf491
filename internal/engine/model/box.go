package model

import "github.com/Faultbox/panosphere/pkg/math"

// Box face order. Group i of a box uses material i.
const (
	BoxPosX = iota
	BoxNegX
	BoxPosY
	BoxNegY
	BoxPosZ
	BoxNegZ
)

// plane describes one box face: u, v, w are axis indices, the dir values
// orient the face so its triangles wind counter-clockwise seen from outside.
type plane struct {
	u, v, w    int
	udir, vdir float32
	width      float32
	height     float32
	depth      float32
}

// BuildBox creates a box centred on the origin with one single-quad group per
// face in the order +X, -X, +Y, -Y, +Z, -Z. UV (0,0) is each face's bottom-left
// seen from outside.
func BuildBox(width, height, depth float32) *Mesh {
	planes := [6]plane{
		{2, 1, 0, -1, -1, depth, height, width},
		{2, 1, 0, 1, -1, depth, height, -width},
		{0, 2, 1, 1, 1, width, depth, height},
		{0, 2, 1, 1, -1, width, depth, -height},
		{0, 1, 2, 1, -1, width, height, depth},
		{0, 1, 2, -1, -1, width, height, -depth},
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
		Groups:   make([]Group, 0, 6),
		Bounds:   emptyBounds(),
	}

	for i, p := range planes {
		base := uint32(len(mesh.Vertices))
		start := int32(len(mesh.Indices))

		var normal [3]float32
		normal[p.w] = 1
		if p.depth < 0 {
			normal[p.w] = -1
		}

		for iy := 0; iy < 2; iy++ {
			for ix := 0; ix < 2; ix++ {
				var pos [3]float32
				pos[p.u] = (float32(ix)*p.width - p.width/2) * p.udir
				pos[p.v] = (float32(iy)*p.height - p.height/2) * p.vdir
				pos[p.w] = p.depth / 2
				updateBounds(&mesh.Bounds, pos)

				mesh.Vertices = append(mesh.Vertices, Vertex{
					Position: pos,
					Normal:   normal,
					TexCoord: [2]float32{float32(ix), 1 - float32(iy)},
				})
			}
		}

		// a=(0,0) b=(0,1) c=(1,1) d=(1,0) in (ix,iy)
		a, b, c, d := base, base+2, base+3, base+1
		mesh.Indices = append(mesh.Indices, a, b, d, b, c, d)
		mesh.Groups = append(mesh.Groups, Group{
			MaterialIndex: i,
			StartIndex:    start,
			IndexCount:    6,
		})
	}

	return mesh
}

// Transform applies m to every vertex in place. Normals use the inverse
// transpose so they stay perpendicular under non-uniform scale. Winding is left
// untouched, so a mirroring transform turns the faces inside out.
func (m *Mesh) Transform(mat math.Mat4) {
	inv := mat.Inverse()
	m.Bounds = emptyBounds()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.TransformPoint(v.Position)
		n := v.Normal
		v.Normal = Normalize([3]float32{
			inv[0]*n[0] + inv[1]*n[1] + inv[2]*n[2],
			inv[4]*n[0] + inv[5]*n[1] + inv[6]*n[2],
			inv[8]*n[0] + inv[9]*n[1] + inv[10]*n[2],
		})
		updateBounds(&m.Bounds, v.Position)
	}
}
