// Package cubemap implements the panorama adapter for cube panoramas made of
// six independent face images.
//
// Descriptors list faces in the viewer's public order (left, front, right,
// back, top, bottom). Internally faces are kept in the renderer's native
// order (left, right, top, bottom, back, front), which is also the material
// order of the cube mesh.
package cubemap

// FaceCount is the number of faces of a cube.
const FaceCount = 6

// Face is a cube face index in native order.
type Face int

// Faces in native order.
const (
	Left Face = iota
	Right
	Top
	Bottom
	Back
	Front
)

var faceNames = [FaceCount]string{"left", "right", "top", "bottom", "back", "front"}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return "unknown"
	}
	return faceNames[f]
}

// cubeArray maps a native index to the public (descriptor sequence) index.
var cubeArray = [FaceCount]int{0, 2, 4, 5, 3, 1}

// publicOrder is the face name order of sequence descriptors.
var publicOrder = [FaceCount]string{"left", "front", "right", "back", "top", "bottom"}

// CubeArray returns the native-to-public index permutation:
// native face i is element CubeArray()[i] of a sequence descriptor.
func CubeArray() [FaceCount]int { return cubeArray }

// CubeHashmap returns the face names in native order, used to read named-map
// descriptors.
func CubeHashmap() [FaceCount]string { return faceNames }

// PublicOrder returns the face names in sequence descriptor order.
func PublicOrder() [FaceCount]string { return publicOrder }
