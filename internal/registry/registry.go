// Package registry owns the mapping from opaque int64 handles to live
// model contexts. It is the only component with shared mutable state;
// everything it guarantees, it guarantees under a single mutex.
//
// Handles are allocated from a monotonic counter starting at 1 and are
// never reused for the lifetime of the process. Storage is a slot arena
// with a free list: destroyed slots are tombstoned and recycled, and
// every lookup verifies the slot still belongs to the requested handle,
// so a stale handle cannot alias a context created later in the same
// slot.
package registry

import (
	"sort"
	"sync"
	"time"
)

// Handle identifies a live context. Strictly positive; None (0) is the
// invalid/error sentinel and is never allocated.
type Handle int64

// None is the sentinel returned when creation fails.
const None Handle = 0

// Defaults applied to every context the stub creates. A real engine
// build derives these from its load parameters instead.
const (
	DefaultContextSize = 2048
	DefaultThreads     = 4
)

// Context is one loaded model instance. The registry owns the only
// mutable copy; Lookup hands out value copies so no caller can observe
// a context after a concurrent destroy.
type Context struct {
	Path        string
	Loaded      bool
	ContextSize int
	Threads     int
	CreatedAt   time.Time
}

type slot struct {
	owner Handle // None when the slot is free
	ctx   Context
}

// Registry is a constructed-once handle table. The zero value is not
// usable; call New.
type Registry struct {
	mu    sync.Mutex
	slots []slot
	free  []int            // indices of tombstoned slots
	index map[Handle]int   // handle -> slot index, live handles only
	next  Handle           // next handle to allocate
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		index: make(map[Handle]int),
		next:  1,
	}
}

// Create allocates a context for path under a fresh handle and returns
// it. Allocation and insertion share one critical section: a returned
// handle always has a backing entry. The stub cannot fail; a real
// backend reports load failure by returning None.
func (r *Registry) Create(path string) Handle {
	ctx := Context{
		Path:        path,
		Loaded:      true,
		ContextSize: DefaultContextSize,
		Threads:     DefaultThreads,
		CreatedAt:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++

	var idx int
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx] = slot{owner: h, ctx: ctx}
	} else {
		idx = len(r.slots)
		r.slots = append(r.slots, slot{owner: h, ctx: ctx})
	}
	r.index[h] = idx
	return h
}

// Lookup returns a copy of the context for h. The copy is taken under
// the lock, so the result stays valid even if another goroutine
// destroys h immediately after.
func (r *Registry) Lookup(h Handle) (Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.index[h]
	if !ok {
		return Context{}, false
	}
	if r.slots[idx].owner != h {
		// Stale index entry; cannot happen while invariants hold, but a
		// slot-map checks ownership rather than trusting the index.
		return Context{}, false
	}
	return r.slots[idx].ctx, true
}

// Destroy removes the context for h. Reports whether anything was
// removed; destroying an absent handle is a safe no-op.
func (r *Registry) Destroy(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.index[h]
	if !ok || r.slots[idx].owner != h {
		return false
	}
	r.slots[idx] = slot{}
	r.free = append(r.free, idx)
	delete(r.index, h)
	return true
}

// DestroyAll removes every live context and returns how many were
// removed. Atomic with respect to concurrent Create: a creation either
// completes before the sweep and is removed, or begins after it.
func (r *Registry) DestroyAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.index)
	for h, idx := range r.index {
		r.slots[idx] = slot{}
		r.free = append(r.free, idx)
		delete(r.index, h)
	}
	return n
}

// Len returns the number of live contexts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.index)
}

// Empty reports whether no context is live.
func (r *Registry) Empty() bool {
	return r.Len() == 0
}

// Oldest returns the smallest live handle. This is the legacy facade's
// "current context": deterministic, unlike iteration order over a map.
func (r *Registry) Oldest() (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best Handle
	for h := range r.index {
		if best == None || h < best {
			best = h
		}
	}
	return best, best != None
}

// Entry pairs a handle with a copy of its context for status reporting.
type Entry struct {
	Handle  Handle
	Context Context
}

// Snapshot returns copies of all live contexts ordered by handle.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.index))
	for h, idx := range r.index {
		out = append(out, Entry{Handle: h, Context: r.slots[idx].ctx})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}
