// Package telemetry keeps in-process labeled counters for cost breakdown runs.
package telemetry

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry is a set of monotonically increasing counters keyed by metric name
// and label pairs
type Registry struct {
	mu    sync.RWMutex
	items map[string]*int64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*int64)}
}

// Key builds the storage key for a metric. Labels are name/value pairs; a
// trailing unpaired label is ignored.
func Key(name string, labels ...string) string {
	if len(labels) < 2 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for i := 0; i+1 < len(labels); i += 2 {
		b.WriteByte('|')
		b.WriteString(labels[i])
		b.WriteByte('=')
		b.WriteString(labels[i+1])
	}
	return b.String()
}

// Inc adds one to a counter
func (r *Registry) Inc(name string, labels ...string) {
	key := Key(name, labels...)

	r.mu.RLock()
	p, ok := r.items[key]
	r.mu.RUnlock()
	if ok {
		atomic.AddInt64(p, 1)
		return
	}

	r.mu.Lock()
	p, ok = r.items[key]
	if !ok {
		v := int64(1)
		r.items[key] = &v
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	atomic.AddInt64(p, 1)
}

// Get returns the current value of a counter, 0 if it was never incremented
func (r *Registry) Get(name string, labels ...string) int64 {
	r.mu.RLock()
	p, ok := r.items[Key(name, labels...)]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(p)
}

// Snapshot copies every counter
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]int64, len(r.items))
	for k, p := range r.items {
		cp[k] = atomic.LoadInt64(p)
	}
	return cp
}

// Keys returns the counter keys in sorted order
func (r *Registry) Keys() []string {
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
