package registry

import (
	"errors"
	"sync"
)

// Platform is anything registered under a unique name.
type Platform interface {
	// Name returns the platform's unique identifier.
	Name() string
}

// Registry manages registered platforms in a thread-safe manner.
// It preserves registration order, which decides detection priority.
type Registry[P Platform] struct {
	mu        sync.RWMutex
	platforms map[string]P
	// Order preserving list for First to maintain registration order
	ordered []P
}

// New creates a new Registry instance.
func New[P Platform]() *Registry[P] {
	return &Registry[P]{
		platforms: make(map[string]P),
		ordered:   make([]P, 0),
	}
}

// Replace registers p, swapping out any platform with the same name while
// keeping its position in the detection order.
func (r *Registry[P]) Replace(p P) error {
	if any(p) == nil {
		return errors.New("platform cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return errors.New("platform name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.platforms[name]; exists {
		for i, existing := range r.ordered {
			if existing.Name() == name {
				r.ordered[i] = p
				break
			}
		}
	} else {
		r.ordered = append(r.ordered, p)
	}
	r.platforms[name] = p
	return nil
}

// Get retrieves a platform by name.
// Returns the platform and true if found, or the zero value and false if not found.
func (r *Registry[P]) Get(name string) (P, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.platforms[name]
	return p, ok
}

// GetAll returns all registered platforms in registration order.
// The returned slice is a copy and safe for concurrent use.
func (r *Registry[P]) GetAll() []P {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]P, 0, len(r.ordered))
	result = append(result, r.ordered...)

	return result
}

// First returns the first platform, in registration order, for which match
// reports true.
func (r *Registry[P]) First(match func(P) bool) (P, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.ordered {
		if match(p) {
			return p, true
		}
	}

	var zero P
	return zero, false
}
