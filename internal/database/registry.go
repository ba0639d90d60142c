package database

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-bootstrap/models"
)

// Registry maps database names to the models they expose. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	databases map[string]map[string]Model
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{databases: make(map[string]map[string]Model)}
}

// Add records the models of database name. A name can be added once.
func (r *Registry) Add(name string, dbModels map[string]Model) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.databases[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateDatabase, name)
	}

	cp := make(map[string]Model, len(dbModels))
	for k, m := range dbModels {
		m.Columns = slices.Clone(m.Columns)
		cp[k] = m
	}
	r.databases[name] = cp
	return nil
}

// Names returns the registered database names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.databases))
}

// Len returns the number of registered databases.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.databases)
}

// Models returns a copy of the models registered for name.
func (r *Registry) Models(name string) (map[string]Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dbModels, ok := r.databases[name]
	if !ok {
		return nil, false
	}
	return maps.Clone(dbModels), true
}

// Model looks up a single model of database name.
func (r *Registry) Model(name, model string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.databases[name][model]
	return m, ok
}

// Info returns the registry content as response DTOs, sorted by name.
func (r *Registry) Info() []models.DatabaseInfo {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	info := make([]models.DatabaseInfo, 0, len(names))
	for _, name := range names {
		dbModels := make(map[string][]string, len(r.databases[name]))
		for k, m := range r.databases[name] {
			dbModels[k] = slices.Clone(m.Columns)
		}
		info = append(info, models.DatabaseInfo{Name: name, Models: dbModels})
	}
	return info
}
