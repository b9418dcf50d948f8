package coordinator

import (
	"sync"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
)

// SurfaceRegistry keeps surfaces that are alive but detached from their
// window while an overlay covers it. A surface id is present only while
// hidden.
type SurfaceRegistry struct {
	mu       sync.Mutex
	surfaces map[entity.SurfaceID]port.Surface
}

// NewSurfaceRegistry creates an empty registry.
func NewSurfaceRegistry() *SurfaceRegistry {
	return &SurfaceRegistry{surfaces: make(map[entity.SurfaceID]port.Surface)}
}

// Put stores a hidden surface.
func (r *SurfaceRegistry) Put(s port.Surface) {
	if s == nil {
		return
	}
	r.mu.Lock()
	r.surfaces[s.ID()] = s
	r.mu.Unlock()
}

// Take removes and returns the surface hidden under id.
func (r *SurfaceRegistry) Take(id entity.SurfaceID) (port.Surface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.surfaces[id]
	if ok {
		delete(r.surfaces, id)
	}
	return s, ok
}

// Remove drops id, reporting whether it was present.
func (r *SurfaceRegistry) Remove(id entity.SurfaceID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.surfaces[id]
	delete(r.surfaces, id)
	return ok
}

// Contains reports whether id is hidden.
func (r *SurfaceRegistry) Contains(id entity.SurfaceID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.surfaces[id]
	return ok
}

// Len returns the number of hidden surfaces.
func (r *SurfaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}
