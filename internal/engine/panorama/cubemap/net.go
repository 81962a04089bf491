package cubemap

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/panosphere/internal/engine/texture"
)

// netCells places each native face in a 4x3 cross:
//
//	    top
//	left front right back
//	    bottom
var netCells = [FaceCount]image.Point{
	Left:   {0, 1},
	Right:  {2, 1},
	Top:    {1, 0},
	Bottom: {1, 2},
	Back:   {3, 1},
	Front:  {1, 1},
}

// Unfold draws the six faces, in native order, into a cross-shaped net. Each
// face is drawn as sampled through its UV transform and scaled to the widest
// face.
func Unfold(textures []*texture.Texture) (*image.RGBA, error) {
	if len(textures) != FaceCount {
		return nil, fmt.Errorf("%w: got %d textures", ErrWrongFaceCount, len(textures))
	}

	cell := 0
	for i, tex := range textures {
		if tex == nil || tex.Image == nil {
			return nil, fmt.Errorf("face %s: no image", Face(i))
		}
		cell = max(cell, tex.Width())
	}

	net := image.NewRGBA(image.Rect(0, 0, 4*cell, 3*cell))
	for i, tex := range textures {
		at := netCells[i].Mul(cell)
		dst := image.Rectangle{Min: at, Max: at.Add(image.Pt(cell, cell))}
		src := tex.Oriented()
		if src.Bounds().Dx() == cell && src.Bounds().Dy() == cell {
			xdraw.Draw(net, dst, src, src.Bounds().Min, xdraw.Src)
			continue
		}
		xdraw.ApproxBiLinear.Scale(net, dst, src, src.Bounds(), xdraw.Src, nil)
	}
	return net, nil
}
