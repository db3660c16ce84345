// Package registry wires catalog tables to the physical layout that
// should back them: a pool-keyed registry of store factories, so a
// host can pick a layout by name without its own code depending on any
// concrete store type.
package registry

import (
	"fmt"
	"sync"

	"github.com/tuplekit/dbkernel/catalog"
	"github.com/tuplekit/dbkernel/store"
)

// Factory builds a Store for the given table. RowStore and ColumnStore
// each register one under a pool name.
type Factory func(t *catalog.Table) store.Store

// Registry is a pool-keyed registry of store factories plus an optional
// default pool, letting a host pick a physical layout by name and build
// stores against it without referencing concrete types.
type Registry struct {
	mu          sync.RWMutex
	factories   map[string]Factory
	defaultPool string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterStore associates a pool name with a store Factory.
func (r *Registry) RegisterStore(pool string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[pool] = f
}

// SetDefaultStore selects which registered pool CreateStore uses.
func (r *Registry) SetDefaultStore(pool string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultPool = pool
}

// CreateStore instantiates a Store for t using the default pool.
func (r *Registry) CreateStore(t *catalog.Table) (store.Store, error) {
	r.mu.RLock()
	pool := r.defaultPool
	r.mu.RUnlock()
	if pool == "" {
		return nil, fmt.Errorf("registry: no default store pool set")
	}
	return r.CreateStoreFromPool(pool, t)
}

// CreateStoreFromPool instantiates a Store for t from the named pool.
func (r *Registry) CreateStoreFromPool(pool string, t *catalog.Table) (store.Store, error) {
	r.mu.RLock()
	f, ok := r.factories[pool]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: no store registered for pool %q", pool)
	}
	return f(t), nil
}
