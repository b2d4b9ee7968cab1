// Package registry remembers which images have finished loading at least once.
package registry

import "sync"

// Registry is an append-only set of image keys. Entries are never evicted;
// it is meant to live for one process and grows with the number of distinct
// images rendered.
type Registry struct {
	sync.Mutex
	seen map[string]struct{}
}

func New() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

func (r *Registry) HasBeenLoaded(key string) bool {
	r.Lock()
	defer r.Unlock()
	_, ok := r.seen[key]
	return ok
}

// MarkLoaded records key. Marking the same key again is a no-op.
func (r *Registry) MarkLoaded(key string) {
	r.Lock()
	defer r.Unlock()
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	r.seen[key] = struct{}{}
}

func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.seen)
}
