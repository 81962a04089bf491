package cubemap

import (
	"errors"
	"image/color"
	"testing"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/engine/texture"
)

func TestUnfold(t *testing.T) {
	backend := texture.NewCPUBackend()
	colors := [FaceCount]color.RGBA{
		Left:   {R: 255, A: 255},
		Right:  {G: 255, A: 255},
		Top:    {B: 255, A: 255},
		Bottom: {R: 255, G: 255, A: 255},
		Back:   {G: 255, B: 255, A: 255},
		Front:  {R: 255, B: 255, A: 255},
	}

	textures := make([]*texture.Texture, FaceCount)
	for i, c := range colors {
		tex, err := texture.New(backend, Face(i).String(), solid(8, 8, c))
		if err != nil {
			t.Fatal(err)
		}
		textures[i] = tex
	}

	net, err := Unfold(textures)
	if err != nil {
		t.Fatalf("Unfold: %v", err)
	}
	if net.Bounds().Dx() != 32 || net.Bounds().Dy() != 24 {
		t.Fatalf("net bounds = %v, want 32x24", net.Bounds())
	}

	for face, cell := range netCells {
		x, y := cell.X*8+4, cell.Y*8+4
		if got := net.RGBAAt(x, y); got != colors[face] {
			t.Errorf("%s cell = %v, want %v", Face(face), got, colors[face])
		}
	}
	if got := net.RGBAAt(1, 1); got.A != 0 {
		t.Errorf("corner outside the cross should stay empty, got %v", got)
	}
}

func TestUnfoldFlippedFace(t *testing.T) {
	backend := texture.NewCPUBackend()
	textures := make([]*texture.Texture, FaceCount)
	for i := range textures {
		img := solid(4, 4, color.RGBA{A: 255})
		img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
		tex, err := texture.New(backend, Face(i).String(), img)
		if err != nil {
			t.Fatal(err)
		}
		textures[i] = tex
	}

	env := newTestEnv(t)
	a := New(env.host, Options{FlipTopBottom: true})
	mesh := a.CreateMesh(1)
	a.SetTexture(mesh, &panorama.TextureData{Textures: textures})

	net, err := Unfold(textures)
	if err != nil {
		t.Fatal(err)
	}

	// A half turn moves the marked corner of top to the opposite corner.
	top := netCells[Top].Mul(4)
	if got := net.RGBAAt(top.X+3, top.Y+3); got.R != 255 {
		t.Errorf("flipped top marker = %v, want red at far corner", got)
	}
	left := netCells[Left].Mul(4)
	if got := net.RGBAAt(left.X, left.Y); got.R != 255 {
		t.Errorf("left marker = %v, want red at origin", got)
	}
}

func TestUnfoldErrors(t *testing.T) {
	if _, err := Unfold(nil); !errors.Is(err, ErrWrongFaceCount) {
		t.Errorf("err = %v, want ErrWrongFaceCount", err)
	}
	if _, err := Unfold(make([]*texture.Texture, FaceCount)); err == nil {
		t.Error("missing faces should fail")
	}
}
