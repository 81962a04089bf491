// Package math provides the small matrix and vector set used for mesh and
// texture-coordinate transforms.
package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale matrix. A negative factor mirrors along its axis.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateZ returns a counter-clockwise rotation about the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns m * other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			result[col*4+row] = sum
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// Inverse returns the inverse of an affine matrix: a 3x3 linear part plus a
// translation. Returns identity if the linear part is singular.
func (m Mat4) Inverse() Mat4 {
	a, b, c := m[0], m[4], m[8]
	d, e, f := m[1], m[5], m[9]
	g, h, i := m[2], m[6], m[10]

	// Cofactors of the linear part.
	c0 := e*i - f*h
	c1 := -(d*i - f*g)
	c2 := d*h - e*g

	det := a*c0 + b*c1 + c*c2
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	var r Mat4
	r[0] = c0 * inv
	r[1] = c1 * inv
	r[2] = c2 * inv
	r[4] = -(b*i - c*h) * inv
	r[5] = (a*i - c*g) * inv
	r[6] = -(a*h - b*g) * inv
	r[8] = (b*f - c*e) * inv
	r[9] = -(a*f - c*d) * inv
	r[10] = (a*e - b*d) * inv
	r[15] = 1

	// Inverse translation is -R⁻¹·t.
	t := [3]float32{m[12], m[13], m[14]}
	r[12] = -(r[0]*t[0] + r[4]*t[1] + r[8]*t[2])
	r[13] = -(r[1]*t[0] + r[5]*t[1] + r[9]*t[2])
	r[14] = -(r[2]*t[0] + r[6]*t[1] + r[10]*t[2])
	return r
}
