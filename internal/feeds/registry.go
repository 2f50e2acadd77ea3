package feeds

import (
	"sort"
	"sync"
)

// Registry holds the source catalog plus the quarantine set. Catalog
// membership never changes after construction; quarantine state does,
// so all access goes through the mutex.
type Registry struct {
	mu          sync.RWMutex
	sources     []Source
	quarantined map[string]bool
}

// NewRegistry builds a registry over the given catalog. Sources with
// duplicate names keep the first occurrence.
func NewRegistry(sources []Source) *Registry {
	seen := make(map[string]bool, len(sources))
	kept := make([]Source, 0, len(sources))
	for _, s := range sources {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		kept = append(kept, s)
	}
	return &Registry{
		sources:     kept,
		quarantined: make(map[string]bool),
	}
}

// List returns healthy sources, optionally restricted to a category.
// Quarantined sources are excluded until ResetQuarantine.
func (r *Registry) List(category string) []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if r.quarantined[s.Name] {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out
}

// All returns every catalog entry regardless of quarantine state.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// MarkQuarantined excludes a source from List until the next reset.
// Unknown names are recorded harmlessly.
func (r *Registry) MarkQuarantined(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quarantined[name] = true
}

// IsQuarantined reports whether the named source is currently excluded.
func (r *Registry) IsQuarantined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quarantined[name]
}

// Quarantined returns the sorted names of all quarantined sources.
func (r *Registry) Quarantined() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.quarantined))
	for name := range r.quarantined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetQuarantine clears the quarantine set and returns how many
// sources became eligible again.
func (r *Registry) ResetQuarantine() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.quarantined)
	r.quarantined = make(map[string]bool)
	return n
}
