// Package model provides mesh geometry for panorama rendering.
package model

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a contiguous index range drawn with one material.
type Group struct {
	MaterialIndex int
	StartIndex    int32
	IndexCount    int32
}

// Mesh holds geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
