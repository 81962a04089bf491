package cubemap

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/engine/texture"
)

// fakeLoader serves generated square images. Refs listed in fail return an
// error; refs listed in gate block until their channel is closed.
type fakeLoader struct {
	size  int
	steps []float64
	fail  map[string]error
	gate  map[string]chan struct{}

	mu    sync.Mutex
	calls []string
	sizes map[string]image.Point
}

func newFakeLoader(size int) *fakeLoader {
	return &fakeLoader{
		size:  size,
		steps: []float64{0.25, 0.5, 1},
		fail:  map[string]error{},
		gate:  map[string]chan struct{}{},
		sizes: map[string]image.Point{},
	}
}

func (l *fakeLoader) LoadImage(ctx context.Context, ref string, onProgress func(float64)) (image.Image, error) {
	l.mu.Lock()
	l.calls = append(l.calls, ref)
	gate := l.gate[ref]
	err := l.fail[ref]
	size, custom := l.sizes[ref]
	l.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	for _, p := range l.steps {
		onProgress(p)
	}
	if !custom {
		size = image.Point{X: l.size, Y: l.size}
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	img.SetRGBA(0, 0, color.RGBA{R: byte(len(ref)), A: 255})
	return img, nil
}

func (l *fakeLoader) calledRefs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type testEnv struct {
	host     *panorama.Host
	loader   *fakeLoader
	backend  *texture.CPUBackend
	logs     *observer.ObservedLogs
	progress []float64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	env := &testEnv{
		loader:  newFakeLoader(8),
		backend: texture.NewCPUBackend(),
		logs:    logs,
	}
	env.host = &panorama.Host{
		Loader:    env.loader,
		Backend:   env.backend,
		TexLimits: texture.Limits{MaxTextureWidth: 64},
		Log:       zap.New(core),
		OnProgress: func(p float64) {
			env.progress = append(env.progress, p)
		},
	}
	return env
}

func (e *testEnv) warnings() []string {
	var msgs []string
	for _, entry := range e.logs.FilterLevelExact(zapcore.WarnLevel).All() {
		msgs = append(msgs, entry.Message)
	}
	return msgs
}

var sampleMap = FaceMap{
	"left":   "L.jpg",
	"front":  "F.jpg",
	"right":  "R.jpg",
	"back":   "B.jpg",
	"top":    "T.jpg",
	"bottom": "Bo.jpg",
}

var image8x4 = image.Point{X: 8, Y: 4}
