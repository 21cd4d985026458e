package instrument

import (
	"sort"
	"sync"
	"sync/atomic"

	"proximity.klederson.com/internal/config"
)

// Registry tracks instrument instances per vessel and holds the settings
// they share. The first instance registered on a vessel is its primary; when
// it leaves, the next one in registration order takes over.
type Registry struct {
	mu       sync.RWMutex
	vessels  map[string][]string
	settings atomic.Pointer[config.Settings]
}

// NewRegistry creates an empty registry sharing s.
func NewRegistry(s config.Settings) *Registry {
	r := &Registry{
		vessels: make(map[string][]string),
	}
	r.SetSettings(s)
	return r
}

// Register adds an instance to a vessel. Registering twice is a no-op.
func (r *Registry) Register(vesselID, instrumentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.vessels[vesselID] {
		if id == instrumentID {
			return
		}
	}
	r.vessels[vesselID] = append(r.vessels[vesselID], instrumentID)
}

// Deregister removes an instance. It reports whether it was registered.
func (r *Registry) Deregister(vesselID, instrumentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.vessels[vesselID]
	for i, id := range ids {
		if id != instrumentID {
			continue
		}
		ids = append(ids[:i:i], ids[i+1:]...)
		if len(ids) == 0 {
			delete(r.vessels, vesselID)
		} else {
			r.vessels[vesselID] = ids
		}
		return true
	}
	return false
}

// IsPrimary reports whether the instance is the one that should draw and sound.
func (r *Registry) IsPrimary(vesselID, instrumentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.vessels[vesselID]
	return len(ids) > 0 && ids[0] == instrumentID
}

// Primary returns the primary instance of a vessel, if any.
func (r *Registry) Primary(vesselID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.vessels[vesselID]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Vessels returns the registered vessel IDs, sorted.
func (r *Registry) Vessels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.vessels))
	for id := range r.vessels {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// Count returns the number of instances on a vessel.
func (r *Registry) Count(vesselID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vessels[vesselID])
}

// Settings returns the current shared settings snapshot.
func (r *Registry) Settings() config.Settings {
	return *r.settings.Load()
}

// SetSettings swaps the shared settings. Call between ticks.
func (r *Registry) SetSettings(s config.Settings) {
	s = s.Clamp()
	r.settings.Store(&s)
}
