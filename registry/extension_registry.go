/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"strings"
	"sync"
)

// ExtensionRegistry maps file extensions to values. Extensions are matched
// case-insensitively and with or without the leading dot.
type ExtensionRegistry[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewExtensionRegistry creates an empty ExtensionRegistry.
func NewExtensionRegistry[V any]() *ExtensionRegistry[V] {
	return &ExtensionRegistry[V]{entries: make(map[string]V)}
}

// NormalizeExt lower-cases ext and ensures it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Register associates v with each of the given extensions.
func (r *ExtensionRegistry[V]) Register(v V, exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range exts {
		r.entries[NormalizeExt(ext)] = v
	}
}

// Lookup returns the value registered for ext.
func (r *ExtensionRegistry[V]) Lookup(ext string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[NormalizeExt(ext)]
	return v, ok
}

// Extensions returns the registered extensions in sorted order.
func (r *ExtensionRegistry[V]) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.entries))
	for ext := range r.entries {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
