package model

import gomath "math"

// Cross computes the cross product of two 3D vectors.
func Cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize returns a unit vector in the same direction as v.
func Normalize(v [3]float32) [3]float32 {
	length := sqrtf(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}

// TriangleNormal returns the winding normal of triangle t (indices 3t..3t+2).
func (m *Mesh) TriangleNormal(t int) [3]float32 {
	a := m.Vertices[m.Indices[3*t]].Position
	b := m.Vertices[m.Indices[3*t+1]].Position
	c := m.Vertices[m.Indices[3*t+2]].Position
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	return Normalize(Cross(e1, e2))
}

func sqrtf(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
