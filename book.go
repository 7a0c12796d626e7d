/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/storagemodels"
)

// Book manages one Manager per chapter of a multi-chapter document. The
// chapters share the tracker, the search path and the record stores.
type Book struct {
	mu         sync.RWMutex
	root       string
	tracker    Tracker
	searchPath *SearchPath
	stores     *StoreSet[storagemodels.FigureRecord]
	opts       []Option
	managers   map[string]*Manager
}

// NewBook creates a Book rooted at root. opts are applied to every chapter
// Manager; record stores given with WithRecordStore are registered once and
// shared.
func NewBook(tracker Tracker, root string, opts ...Option) (*Book, error) {
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.searchPath == nil {
		o.searchPath = NewSearchPath()
	}
	if o.storeSet == nil {
		o.storeSet = NewStoreSet[storagemodels.FigureRecord]()
	}
	for _, ns := range o.stores {
		if err := o.storeSet.Register(ns.name, ns.store); err != nil {
			return nil, err
		}
	}
	if tracker == nil {
		tracker = NopTracker{}
	}

	return &Book{
		root:       root,
		tracker:    tracker,
		searchPath: o.searchPath,
		stores:     o.storeSet,
		opts:       opts,
		managers:   make(map[string]*Manager),
	}, nil
}

// ChapterName returns the directory and registry name of chapter n.
func ChapterName(n int) string {
	return fmt.Sprintf("Chapter%d", n)
}

// Chapter returns the Manager of chapter n, creating it under
// <root>/Chapter<n> on first use.
func (b *Book) Chapter(n int) (*Manager, error) {
	name := ChapterName(n)

	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.managers[name]; ok {
		return m, nil
	}

	opts := append([]Option{}, b.opts...)
	opts = append(opts,
		WithNumber(n),
		WithDocument(name),
		WithSearchPath(b.searchPath),
		WithStoreSet(b.stores),
		withoutRecordStores(),
	)
	m, err := NewManager(b.tracker, filepath.Join(b.root, name), opts...)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w", n, err)
	}
	b.managers[name] = m
	return m, nil
}

// Register adds an externally built Manager under name.
func (b *Book) Register(name string, m *Manager) error {
	if m == nil {
		return errors.NewValidationError("manager", "cannot register a nil manager")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.managers[name]; exists {
		return errors.NewAlreadyExistsError("manager", name)
	}
	b.managers[name] = m
	return nil
}

// Get retrieves the Manager registered under name.
func (b *Book) Get(name string) (*Manager, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	m, exists := b.managers[name]
	if !exists {
		return nil, errors.NewNotFoundError("manager", name)
	}
	return m, nil
}

// Names returns the registered names, sorted.
func (b *Book) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.managers))
	for n := range b.managers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Root returns the book's root directory.
func (b *Book) Root() string { return b.root }

// SearchPath returns the search path shared by the chapters.
func (b *Book) SearchPath() *SearchPath { return b.searchPath }

// Stores returns the record stores shared by the chapters.
func (b *Book) Stores() *StoreSet[storagemodels.FigureRecord] { return b.stores }
