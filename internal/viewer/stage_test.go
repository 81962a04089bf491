package viewer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/engine/panorama/cubemap"
	"github.com/Faultbox/panosphere/internal/engine/texture"
)

type squareLoader struct {
	fail map[string]bool
}

func (l *squareLoader) LoadImage(ctx context.Context, ref string, onProgress func(float64)) (image.Image, error) {
	if l.fail[ref] {
		return nil, errors.New("unreachable")
	}
	onProgress(1)
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func setup(t *testing.T) (*Stage, *texture.CPUBackend, *squareLoader) {
	t.Helper()
	loader := &squareLoader{fail: map[string]bool{}}
	backend := texture.NewCPUBackend()
	host := &panorama.Host{
		Loader:    loader,
		Backend:   backend,
		TexLimits: texture.Limits{MaxTextureWidth: 16},
	}
	return New(cubemap.New(host, cubemap.Options{}), Config{}), backend, loader
}

func faces(prefix string) cubemap.Faces {
	out := make(cubemap.Faces, cubemap.FaceCount)
	for i, name := range cubemap.PublicOrder() {
		out[i] = prefix + "/" + name + ".png"
	}
	return out
}

func TestSetPanorama(t *testing.T) {
	stage, backend, _ := setup(t)

	var loaded []panorama.Source
	stage.OnPanoramaLoaded(func(src panorama.Source) { loaded = append(loaded, src) })

	first := faces("a")
	if err := stage.SetPanorama(context.Background(), first, SetOptions{}); err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}
	mesh := stage.Mesh()
	if mesh == nil || stage.Panorama() == nil {
		t.Fatal("stage should hold a mesh and panorama")
	}
	firstData := stage.TextureData()

	if err := stage.SetPanorama(context.Background(), faces("b"), SetOptions{}); err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}
	if stage.Mesh() != mesh {
		t.Error("without transition the mesh is reused")
	}
	for i, tex := range firstData.Textures {
		if !tex.Disposed() {
			t.Errorf("previous texture %d not released", i)
		}
	}
	if backend.Live() != cubemap.FaceCount {
		t.Errorf("live textures = %d, want %d", backend.Live(), cubemap.FaceCount)
	}
	if len(loaded) != 2 {
		t.Errorf("listeners called %d times, want 2", len(loaded))
	}
}

func TestSetPanoramaTransition(t *testing.T) {
	stage, backend, _ := setup(t)
	var frames []float32
	stage.config.OnFrame = func(opacity float32) { frames = append(frames, opacity) }

	if err := stage.SetPanorama(context.Background(), faces("a"), SetOptions{Transition: true}); err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}
	if len(frames) != 0 {
		t.Error("first panorama has nothing to fade from")
	}
	oldMesh, oldData := stage.Mesh(), stage.TextureData()

	err := stage.SetPanorama(context.Background(), faces("b"), SetOptions{Transition: true, FadeSteps: 4})
	if err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}
	if stage.Mesh() == oldMesh {
		t.Error("transition should swap in a new mesh")
	}
	if len(frames) != 4 || frames[3] != 1 {
		t.Errorf("frames = %v, want 4 steps ending at 1", frames)
	}
	for i, mat := range stage.Mesh().Materials {
		if mat.Opacity != 1 || mat.Transparent {
			t.Errorf("material %d = %+v after fade", i, mat)
		}
	}
	for i, tex := range oldData.Textures {
		if !tex.Disposed() {
			t.Errorf("old texture %d not released", i)
		}
	}
	if backend.Live() != cubemap.FaceCount {
		t.Errorf("live textures = %d", backend.Live())
	}
}

func TestSetPanoramaFailureKeepsPrevious(t *testing.T) {
	stage, backend, loader := setup(t)
	var loaderStates []bool
	stage.config.OnLoader = func(v bool) { loaderStates = append(loaderStates, v) }

	first := faces("a")
	if err := stage.SetPanorama(context.Background(), first, SetOptions{}); err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}

	loader.fail["b/top.png"] = true
	err := stage.SetPanorama(context.Background(), faces("b"), SetOptions{ShowLoader: true})
	var faceErr *cubemap.FaceLoadError
	if !errors.As(err, &faceErr) {
		t.Fatalf("err = %v, want *FaceLoadError", err)
	}
	if stage.Panorama().(cubemap.Faces)[0] != first[0] {
		t.Error("previous panorama should stay")
	}
	for _, mat := range stage.Mesh().Materials {
		if mat.Map.Disposed() {
			t.Error("previous textures should stay bound")
		}
	}
	if backend.Live() != cubemap.FaceCount {
		t.Errorf("live textures = %d", backend.Live())
	}
	if len(loaderStates) != 2 || !loaderStates[0] || loaderStates[1] {
		t.Errorf("loader states = %v, want [true false]", loaderStates)
	}

	if err := stage.SetPanorama(context.Background(), cubemap.Faces{"x"}, SetOptions{}); !errors.Is(err, cubemap.ErrWrongFaceCount) {
		t.Errorf("err = %v, want ErrWrongFaceCount", err)
	}
}

func TestPreload(t *testing.T) {
	stage, backend, loader := setup(t)

	if err := stage.Preload(context.Background(), faces("a")); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if backend.Live() != 0 || backend.Deleted() != cubemap.FaceCount {
		t.Errorf("preload should release its textures: live %d deleted %d", backend.Live(), backend.Deleted())
	}
	if stage.Panorama() != nil {
		t.Error("preload must not change the panorama")
	}

	loader.fail["a/left.png"] = true
	if err := stage.Preload(context.Background(), faces("a")); err == nil {
		t.Error("preload failure should be returned")
	}
}

func TestClose(t *testing.T) {
	stage, backend, _ := setup(t)
	stage.Close()

	stage, backend, _ = setup(t)
	if err := stage.SetPanorama(context.Background(), faces("a"), SetOptions{}); err != nil {
		t.Fatalf("SetPanorama: %v", err)
	}
	stage.Close()
	stage.Close()
	if backend.Live() != 0 {
		t.Errorf("%d textures leaked", backend.Live())
	}
	if err := stage.SetPanorama(context.Background(), faces("b"), SetOptions{}); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
	if err := stage.Preload(context.Background(), faces("b")); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}
