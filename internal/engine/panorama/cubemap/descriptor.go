package cubemap

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
)

// Validation errors.
var (
	ErrWrongFaceCount    = errors.New("must provide exactly 6 image paths when using cubemap")
	ErrMissingFace       = errors.New("must provide exactly left, front, right, back, top, bottom when using cubemap")
	ErrInvalidDescriptor = errors.New("invalid cubemap panorama, are you using the right adapter?")
)

// Faces is a sequence descriptor in public order:
// left, front, right, back, top, bottom.
type Faces []string

// Kind implements panorama.Source.
func (Faces) Kind() string { return "sequence" }

// FaceMap is a named-map descriptor keyed by face name.
type FaceMap map[string]string

// Kind implements panorama.Source.
func (FaceMap) Kind() string { return "map" }

// FaceList holds the six face references in native order.
// Entries from a Faces descriptor may be empty; the load reports those faces.
type FaceList [FaceCount]string

// Validate checks a descriptor and reorders it into native face order.
func Validate(src panorama.Source) (FaceList, error) {
	var list FaceList

	switch s := src.(type) {
	case Faces:
		if len(s) != FaceCount {
			return list, fmt.Errorf("%w: got %d", ErrWrongFaceCount, len(s))
		}
		for i, pub := range cubeArray {
			list[i] = s[pub]
		}

	case FaceMap:
		var missing []string
		for _, name := range publicOrder {
			if s[name] == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return list, fmt.Errorf("%w: missing %s", ErrMissingFace, strings.Join(missing, ", "))
		}
		for i, name := range faceNames {
			list[i] = s[name]
		}

	default:
		kind := "nil"
		if src != nil {
			kind = src.Kind()
		}
		return list, fmt.Errorf("%w (got %s)", ErrInvalidDescriptor, kind)
	}

	return list, nil
}

// ParseDescriptor decodes a YAML or JSON descriptor: a list of six references
// becomes Faces, an object becomes FaceMap.
func ParseDescriptor(data []byte) (panorama.Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	return DecodeNode(&doc)
}

// DecodeNode decodes an already parsed YAML node, such as a panorama embedded
// in a config file.
func DecodeNode(n *yaml.Node) (panorama.Source, error) {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			n = nil
			break
		}
		n = n.Content[0]
	}
	if n == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDescriptor)
	}

	switch n.Kind {
	case yaml.SequenceNode:
		var faces []string
		if err := n.Decode(&faces); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDescriptor, n.Line, err)
		}
		return Faces(faces), nil
	case yaml.MappingNode:
		var faces map[string]string
		if err := n.Decode(&faces); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDescriptor, n.Line, err)
		}
		return FaceMap(faces), nil
	default:
		return nil, fmt.Errorf("%w: line %d: expected a list or a map", ErrInvalidDescriptor, n.Line)
	}
}
