package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownLayout is returned when a layout key is not registered.
var ErrUnknownLayout = errors.New("unknown layout")

var (
	registry   = make(map[string]Layout)
	registryMu sync.RWMutex
)

// Register adds a layout to the registry.
// Panics if a layout with the same key is already registered or if it has
// no columns.
func Register(layout Layout) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[layout.Key]; exists {
		panic(fmt.Sprintf("layout already registered: %s", layout.Key))
	}
	if len(layout.Columns) == 0 {
		panic(fmt.Sprintf("layout has no columns: %s", layout.Key))
	}

	registry[layout.Key] = layout
}

// GetLayout returns a layout by key.
// Returns false if not found.
func GetLayout(key string) (Layout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	layout, ok := registry[key]
	return layout, ok
}

// LookupLayout is GetLayout with an error suitable for returning to callers.
func LookupLayout(key string) (Layout, error) {
	layout, ok := GetLayout(key)
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, key)
	}
	return layout, nil
}

// Layouts returns all registered layouts sorted by key.
func Layouts() []Layout {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Layout, 0, len(registry))
	for _, layout := range registry {
		result = append(result, layout)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// LayoutCount returns the number of registered layouts.
func LayoutCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered layouts.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Layout)
}
