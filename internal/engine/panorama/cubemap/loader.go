package cubemap

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/panosphere/internal/engine/texture"
)

var errEmptyRef = errors.New("empty image reference")

// FaceLoadError reports the face whose image could not be loaded.
type FaceLoadError struct {
	Face Face
	Ref  string
	Err  error
}

func (e *FaceLoadError) Error() string {
	return fmt.Sprintf("loading %s face %q: %v", e.Face, e.Ref, e.Err)
}

func (e *FaceLoadError) Unwrap() error { return e.Err }

// progressVector holds per-face load progress. Slots only grow and stay in [0,1].
type progressVector [FaceCount]float64

// set records progress for face and reports whether the slot changed.
func (p *progressVector) set(face Face, v float64) bool {
	if v > 1 {
		v = 1
	}
	if v <= p[face] {
		return false
	}
	p[face] = v
	return true
}

// fraction returns the mean progress over all faces.
func (p *progressVector) fraction() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum / FaceCount
}

// faceEvent is sent by a face goroutine: progress while loading, then exactly
// one final event carrying the image or the error.
type faceEvent struct {
	face     Face
	progress float64
	final    bool
	img      image.Image
	err      error
}

// loadFaces loads the six faces concurrently and builds their textures.
//
// Progress and results are funnelled to the calling goroutine, which owns the
// progress vector and creates every texture, so textures are only touched from
// the caller's goroutine. The first failure wins; sibling loads keep running
// but their results are dropped, and textures already built are disposed.
func (a *Adapter) loadFaces(ctx context.Context, faces FaceList, onProgress func(float64)) ([FaceCount]*texture.Texture, error) {
	var textures [FaceCount]*texture.Texture

	loader := a.viewer.ImageLoader()
	norm := a.normalizer()

	events := make(chan faceEvent)
	stop := make(chan struct{})
	defer close(stop)

	send := func(ev faceEvent) {
		select {
		case events <- ev:
		case <-stop:
		}
	}

	for i, ref := range faces {
		go func(face Face, ref string) {
			if ref == "" {
				send(faceEvent{face: face, final: true, err: errEmptyRef})
				return
			}
			img, err := loader.LoadImage(ctx, ref, func(p float64) {
				send(faceEvent{face: face, progress: p})
			})
			send(faceEvent{face: face, final: true, img: img, err: err})
		}(Face(i), ref)
	}

	fail := func(err error) ([FaceCount]*texture.Texture, error) {
		for i, tex := range textures {
			if tex != nil {
				tex.Dispose()
				textures[i] = nil
			}
		}
		return textures, err
	}

	var progress progressVector
	report := func(face Face, p float64) {
		if progress.set(face, p) && onProgress != nil {
			onProgress(progress.fraction())
		}
	}

	for remaining := FaceCount; remaining > 0; {
		select {
		case <-ctx.Done():
			return fail(fmt.Errorf("loading cubemap: %w", ctx.Err()))

		case ev := <-events:
			if !ev.final {
				if textures[ev.face] == nil {
					report(ev.face, ev.progress)
				}
				continue
			}

			ref := faces[ev.face]
			if ev.err != nil {
				return fail(&FaceLoadError{Face: ev.face, Ref: ref, Err: ev.err})
			}

			tex, err := norm.Normalize(ref, ev.img)
			if err != nil {
				return fail(&FaceLoadError{Face: ev.face, Ref: ref, Err: err})
			}
			textures[ev.face] = tex
			report(ev.face, 1)
			remaining--
		}
	}

	return textures, nil
}
