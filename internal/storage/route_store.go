package storage

import (
	"bytes"
	"sync"

	"splitcaster/internal/core/model"
)

// RouteStore saves routes to one path and remembers the last bytes it wrote,
// so a watcher on the same file can ignore its own saves.
type RouteStore struct {
	path string

	mu          sync.Mutex
	lastWritten []byte
}

// NewRouteStore binds a store to path.
func NewRouteStore(path string) *RouteStore {
	return &RouteStore{path: path}
}

// Path returns the bound route file.
func (store *RouteStore) Path() string {
	return store.path
}

// Load reads the bound file, falling back to the bundled default route.
func (store *RouteStore) Load() (model.Route, error) {
	return LoadRouteOrDefault(store.path)
}

// SaveRoute writes the persistent part of route.
func (store *RouteStore) SaveRoute(route model.Route) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	serialized, err := writeRoute(store.path, route)
	if err != nil {
		return err
	}
	store.lastWritten = serialized
	return nil
}

// WroteContent reports whether data is exactly what the last save wrote.
func (store *RouteStore) WroteContent(data []byte) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.lastWritten != nil && bytes.Equal(store.lastWritten, data)
}
