/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/suparena/texfigure/datastore"
	"github.com/suparena/texfigure/errors"
)

// StoreSet holds named DataStores for type T and fans writes out to all of them.
type StoreSet[T any] struct {
	mu     sync.RWMutex
	names  []string
	stores map[string]datastore.DataStore[T]
}

// NewStoreSet creates an empty StoreSet for type T.
func NewStoreSet[T any]() *StoreSet[T] {
	return &StoreSet[T]{
		stores: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds a datastore under name.
func (s *StoreSet[T]) Register(name string, ds datastore.DataStore[T]) error {
	if ds == nil {
		return errors.NewValidationError("datastore", "cannot register a nil datastore")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[name]; exists {
		return errors.NewAlreadyExistsError("datastore", name)
	}
	s.stores[name] = ds
	s.names = append(s.names, name)
	return nil
}

// Get retrieves a datastore by name.
func (s *StoreSet[T]) Get(name string) (datastore.DataStore[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, exists := s.stores[name]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", name)
	}
	return ds, nil
}

// Remove deletes a datastore by name.
func (s *StoreSet[T]) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[name]; !exists {
		return errors.NewNotFoundError("datastore", name)
	}
	delete(s.stores, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}

// Names returns the registered names in registration order.
func (s *StoreSet[T]) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names...)
}

// Len returns the number of registered datastores.
func (s *StoreSet[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// PutAll writes entity to every datastore. Every store is attempted; the
// failures are joined in the returned error.
func (s *StoreSet[T]) PutAll(ctx context.Context, entity T) error {
	s.mu.RLock()
	names := append([]string(nil), s.names...)
	stores := make([]datastore.DataStore[T], len(names))
	for i, n := range names {
		stores[i] = s.stores[n]
	}
	s.mu.RUnlock()

	var errs []error
	for i, ds := range stores {
		if err := ds.Put(ctx, entity); err != nil {
			errs = append(errs, fmt.Errorf("datastore %q: %w", names[i], err))
		}
	}
	return stderrors.Join(errs...)
}
