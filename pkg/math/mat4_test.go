package math

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func nearPoint(a, b [3]float32) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 2, 2))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   [3]float32
		want [3]float32
	}{
		{"translate", Translate(10, 20, 30), [3]float32{1, 2, 3}, [3]float32{11, 22, 33}},
		{"scale", Scale(2, 3, 4), [3]float32{1, 1, 1}, [3]float32{2, 3, 4}},
		{"mirror z", Scale(1, 1, -1), [3]float32{1, 2, 3}, [3]float32{1, 2, -3}},
		{"quarter turn", RotateZ(math.Pi / 2), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		// Mul applies the right-hand matrix first.
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), [3]float32{1, 1, 1}, [3]float32{3, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateAboutCenter(t *testing.T) {
	// Half turn about (0.5, 0.5) swaps opposite UV corners.
	m := Translate(0.5, 0.5, 0).Mul(RotateZ(math.Pi)).Mul(Translate(-0.5, -0.5, 0))
	if got := m.TransformPoint([3]float32{0, 0, 0}); !nearPoint(got, [3]float32{1, 1, 0}) {
		t.Errorf("corner maps to %v, want (1,1)", got)
	}
	if got := m.TransformPoint([3]float32{0.5, 0.5, 0}); !nearPoint(got, [3]float32{0.5, 0.5, 0}) {
		t.Errorf("center moved to %v", got)
	}
}

func TestInverse(t *testing.T) {
	mats := []Mat4{
		Identity(),
		Translate(3, -4, 5),
		Scale(2, 0.5, -1),
		Translate(1, 2, 3).Mul(RotateZ(0.7)).Mul(Scale(2, 3, 4)),
	}
	p := [3]float32{1.5, -2, 7}
	for i, m := range mats {
		back := m.Inverse().TransformPoint(m.TransformPoint(p))
		if !nearPoint(back, p) {
			t.Errorf("matrix %d: round trip gave %v, want %v", i, back, p)
		}
	}

	if Scale(1, 0, 1).Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}
