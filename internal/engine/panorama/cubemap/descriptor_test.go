package cubemap

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type otherSource struct{}

func (otherSource) Kind() string { return "equirectangular" }

func TestFaceTables(t *testing.T) {
	arr := CubeArray()
	seen := map[int]bool{}
	for _, v := range arr {
		if v < 0 || v >= FaceCount || seen[v] {
			t.Fatalf("CubeArray %v is not a permutation", arr)
		}
		seen[v] = true
	}

	// Native face i must be named by the public name at CubeArray[i].
	pub := PublicOrder()
	names := CubeHashmap()
	for i := 0; i < FaceCount; i++ {
		if pub[arr[i]] != names[i] {
			t.Errorf("native %d: public name %q, hashmap name %q", i, pub[arr[i]], names[i])
		}
		if Face(i).String() != names[i] {
			t.Errorf("Face(%d).String() = %q, want %q", i, Face(i), names[i])
		}
	}
	if Face(9).String() != "unknown" {
		t.Error("out of range face should be unknown")
	}

	// Accessors hand out copies.
	arr[0] = 5
	names[0] = "mutated"
	if CubeArray()[0] != 0 || CubeHashmap()[0] != "left" {
		t.Error("face tables must not be mutable through accessors")
	}
}

func TestValidateSequence(t *testing.T) {
	descs := []Faces{
		{"0", "1", "2", "3", "4", "5"},
		{"left.png", "front.png", "right.png", "back.png", "top.png", "bottom.png"},
		{"a", "a", "b", "b", "c", "c"},
	}
	for _, desc := range descs {
		list, err := Validate(desc)
		if err != nil {
			t.Fatalf("Validate(%v): %v", desc, err)
		}
		for i, pub := range CubeArray() {
			if list[i] != desc[pub] {
				t.Errorf("Validate(%v)[%d] = %q, want %q", desc, i, list[i], desc[pub])
			}
		}
	}

	list, _ := Validate(descs[1])
	want := FaceList{"left.png", "right.png", "top.png", "bottom.png", "back.png", "front.png"}
	if list != want {
		t.Errorf("native order = %v, want %v", list, want)
	}
}

func TestValidateWrongFaceCount(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 7, 12} {
		desc := make(Faces, n)
		for i := range desc {
			desc[i] = fmt.Sprintf("f%d.jpg", i)
		}
		if _, err := Validate(desc); !errors.Is(err, ErrWrongFaceCount) {
			t.Errorf("length %d: err = %v, want ErrWrongFaceCount", n, err)
		}
	}
	if _, err := Validate(Faces(nil)); !errors.Is(err, ErrWrongFaceCount) {
		t.Errorf("nil sequence: err = %v, want ErrWrongFaceCount", err)
	}
}

func TestValidateMap(t *testing.T) {
	list, err := Validate(sampleMap)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for i, name := range CubeHashmap() {
		if list[i] != sampleMap[name] {
			t.Errorf("face %d = %q, want %q", i, list[i], sampleMap[name])
		}
	}
	if want := (FaceList{"L.jpg", "R.jpg", "T.jpg", "Bo.jpg", "B.jpg", "F.jpg"}); list != want {
		t.Errorf("native order = %v, want %v", list, want)
	}

	// Extra keys are ignored.
	extra := FaceMap{"preview": "p.jpg"}
	for k, v := range sampleMap {
		extra[k] = v
	}
	if _, err := Validate(extra); err != nil {
		t.Errorf("extra keys should be ignored: %v", err)
	}
}

func TestValidateMissingFace(t *testing.T) {
	for _, name := range PublicOrder() {
		t.Run(name, func(t *testing.T) {
			missing := FaceMap{}
			empty := FaceMap{}
			for k, v := range sampleMap {
				empty[k] = v
				if k != name {
					missing[k] = v
				}
			}
			empty[name] = ""

			for _, desc := range []FaceMap{missing, empty} {
				_, err := Validate(desc)
				if !errors.Is(err, ErrMissingFace) {
					t.Fatalf("err = %v, want ErrMissingFace", err)
				}
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q should name %s", err, name)
				}
			}
		})
	}
	if _, err := Validate(FaceMap(nil)); !errors.Is(err, ErrMissingFace) {
		t.Errorf("nil map: err = %v, want ErrMissingFace", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	if _, err := Validate(nil); !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("nil source: err = %v, want ErrInvalidDescriptor", err)
	}
	_, err := Validate(otherSource{})
	if !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("other source: err = %v, want ErrInvalidDescriptor", err)
	}
	if !strings.Contains(err.Error(), "equirectangular") {
		t.Errorf("error %q should name the source kind", err)
	}
}

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"yaml list", "[l, f, r, b, t, d]", "sequence", nil},
		{"json list", `["l","f","r","b","t","d"]`, "sequence", nil},
		{"yaml map", "left: l\nfront: f\nright: r\nback: b\ntop: t\nbottom: d\n", "map", nil},
		{"json map", `{"left":"l","front":"f","right":"r","back":"b","top":"t","bottom":"d"}`, "map", nil},
		{"aliased list", "base: &faces [l, f, r, b, t, d]\n", "", ErrInvalidDescriptor},
		{"scalar", `"pano.jpg"`, "", ErrInvalidDescriptor},
		{"empty", "", "", ErrInvalidDescriptor},
		{"nested list", "[[l], f]", "", ErrInvalidDescriptor},
		{"nested map", "left: {url: l}", "", ErrInvalidDescriptor},
		{"broken", "[l, f", "", ErrInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseDescriptor([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescriptor: %v", err)
			}
			if src.Kind() != tt.want {
				t.Errorf("kind = %s, want %s", src.Kind(), tt.want)
			}
			if _, err := Validate(src); err != nil {
				t.Errorf("parsed descriptor should validate: %v", err)
			}
		})
	}
}
