package panorama

import (
	"fmt"
	"sort"
	"sync"
)

// Info holds the adapter-level capability flags.
type Info struct {
	ID string
	// SupportsDownload reports whether a panorama has a single file that can be
	// offered for download.
	SupportsDownload bool
}

// Factory builds an adapter bound to a viewer.
type Factory func(v Viewer) Adapter

type entry struct {
	info    Info
	factory Factory
}

// Registry maps adapter ids to their factories.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]entry)}
}

// Register adds an adapter. Registering an id twice is an error.
func (r *Registry) Register(info Info, f Factory) error {
	if info.ID == "" {
		return fmt.Errorf("adapter id is empty")
	}
	if f == nil {
		return fmt.Errorf("adapter %s: nil factory", info.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adapters[info.ID]; ok {
		return fmt.Errorf("adapter %s already registered", info.ID)
	}
	r.adapters[info.ID] = entry{info: info, factory: f}
	return nil
}

// New builds the adapter registered under id.
func (r *Registry) New(id string, v Viewer) (Adapter, error) {
	r.mu.RLock()
	e, ok := r.adapters[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown adapter %q", id)
	}
	return e.factory(v), nil
}

// Info returns the capability flags of adapter id.
func (r *Registry) Info(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.adapters[id]
	return e.info, ok
}

// IDs returns the registered adapter ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
