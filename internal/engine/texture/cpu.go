package texture

import (
	"image"
	"sync"
)

// CPUBackend keeps textures in memory only. It is used by offline tools and
// tracks how many textures are alive so leaks are observable.
type CPUBackend struct {
	mu      sync.Mutex
	next    uint32
	live    map[uint32]bool
	deleted int
}

// NewCPUBackend creates an empty in-memory backend.
func NewCPUBackend() *CPUBackend {
	return &CPUBackend{live: make(map[uint32]bool)}
}

// Upload assigns a new handle to img.
func (b *CPUBackend) Upload(img *image.RGBA) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.live[b.next] = true
	return b.next, nil
}

// Delete releases handle. Unknown handles are ignored.
func (b *CPUBackend) Delete(handle uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live[handle] {
		delete(b.live, handle)
		b.deleted++
	}
}

// Live returns the number of textures not yet deleted.
func (b *CPUBackend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

// Deleted returns the number of textures deleted so far.
func (b *CPUBackend) Deleted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted
}
