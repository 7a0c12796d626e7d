/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Match is the result of resolving a type against a TypeRegistry.
type Match[V any] struct {
	// Value is the registered handler.
	Value V
	// Type is the registered type that matched, either a concrete type or an interface.
	Type reflect.Type
	// Path is the embedded-field index path from the resolved type to the
	// ancestor that matched. It is empty for a direct match.
	Path []int
	// Addr reports that the matched ancestor is a pointer to an addressable
	// embedded value rather than the field itself.
	Addr bool
}

// Direct reports whether the match was made on the resolved type itself.
func (m Match[V]) Direct() bool {
	return len(m.Path) == 0 && !m.Addr
}

// Extract walks v along the match path and returns the ancestor value the
// handler was registered for.
func (m Match[V]) Extract(v reflect.Value) (reflect.Value, error) {
	for _, i := range m.Path {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("type registry: nil pointer on the way to %s", m.Type)
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	if m.Addr {
		if !v.CanAddr() {
			return reflect.Value{}, fmt.Errorf("type registry: %s is not addressable", v.Type())
		}
		v = v.Addr()
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return reflect.Value{}, fmt.Errorf("type registry: nil %s", v.Type())
	}
	return v, nil
}

// TypeRegistry maps Go types to handlers. Lookups fall back from a type to its
// ancestors: the exported embedded fields of a struct, breadth-first in
// declaration order. Interface entries are consulted in registration order
// after the concrete entry at every step of that walk.
type TypeRegistry[V any] struct {
	mu         sync.RWMutex
	concrete   map[reflect.Type]V
	interfaces []reflect.Type
	ifaceVals  map[reflect.Type]V
}

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry[V any]() *TypeRegistry[V] {
	return &TypeRegistry[V]{
		concrete:  make(map[reflect.Type]V),
		ifaceVals: make(map[reflect.Type]V),
	}
}

// Register associates t with v. An existing entry for t is replaced and an
// interface keeps its original position in the lookup order.
func (r *TypeRegistry[V]) Register(t reflect.Type, v V) error {
	if t == nil {
		return fmt.Errorf("type registry: cannot register a nil type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t.Kind() == reflect.Interface {
		if _, exists := r.ifaceVals[t]; !exists {
			r.interfaces = append(r.interfaces, t)
		}
		r.ifaceVals[t] = v
		return nil
	}
	r.concrete[t] = v
	return nil
}

// RegisterFor registers v for the static type T. Use an interface type
// parameter to register an interface entry, e.g. RegisterFor[image.Image].
func RegisterFor[T any, V any](r *TypeRegistry[V], v V) error {
	return r.Register(reflect.TypeFor[T](), v)
}

// Unregister removes the entry for t and reports whether one existed.
func (r *TypeRegistry[V]) Unregister(t reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.concrete[t]; ok {
		delete(r.concrete, t)
		return true
	}
	if _, ok := r.ifaceVals[t]; !ok {
		return false
	}
	delete(r.ifaceVals, t)
	for i, it := range r.interfaces {
		if it == t {
			r.interfaces = append(r.interfaces[:i], r.interfaces[i+1:]...)
			break
		}
	}
	return true
}

// Types returns the registered concrete types sorted by name, followed by the
// interface types in lookup order.
func (r *TypeRegistry[V]) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.concrete)+len(r.interfaces))
	for t := range r.concrete {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return append(types, r.interfaces...)
}

// Count returns the number of registered entries.
func (r *TypeRegistry[V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.concrete) + len(r.interfaces)
}

type ancestor struct {
	t    reflect.Type
	path []int
	addr bool
	// addressable reports whether the struct value at this node is addressable.
	addressable bool
}

// Resolve finds the handler for t, walking its ancestor chain.
func (r *TypeRegistry[V]) Resolve(t reflect.Type) (Match[V], bool) {
	if t == nil {
		return Match[V]{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	queue := []ancestor{{t: t}}
	seen := make(map[reflect.Type]bool)
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		if seen[a.t] {
			continue
		}
		seen[a.t] = true

		if v, ok := r.concrete[a.t]; ok {
			return Match[V]{Value: v, Type: a.t, Path: a.path, Addr: a.addr}, true
		}
		for _, it := range r.interfaces {
			if a.t.Implements(it) {
				return Match[V]{Value: r.ifaceVals[it], Type: it, Path: a.path, Addr: a.addr}, true
			}
		}
		if !a.addr {
			queue = append(queue, embedded(a)...)
		}
	}
	return Match[V]{}, false
}

func embedded(a ancestor) []ancestor {
	st := a.t
	addressable := a.addressable
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
		addressable = true
	}
	if st.Kind() != reflect.Struct {
		return nil
	}

	var out []ancestor
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		path := append(append([]int(nil), a.path...), i)
		out = append(out, ancestor{t: f.Type, path: path, addressable: addressable})
		if addressable && f.Type.Kind() != reflect.Pointer && f.Type.Kind() != reflect.Interface {
			out = append(out, ancestor{t: reflect.PointerTo(f.Type), path: path, addr: true})
		}
	}
	return out
}
