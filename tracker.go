/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Tracker is the document build context a Manager reports files to.
type Tracker interface {
	// AddDependency records a file the document build reads.
	AddDependency(path string)
	// AddCreated records a file the document build produced.
	AddCreated(path string)
}

// NopTracker discards everything.
type NopTracker struct{}

func (NopTracker) AddDependency(string) {}
func (NopTracker) AddCreated(string)    {}

// DependencyList is the on-disk form of a RecordingTracker.
type DependencyList struct {
	Created      []string `yaml:"created"`
	Dependencies []string `yaml:"dependencies"`
}

// RecordingTracker remembers reported files in first-seen order.
type RecordingTracker struct {
	mu      sync.Mutex
	list    DependencyList
	created map[string]bool
	deps    map[string]bool
}

// NewRecordingTracker creates an empty RecordingTracker.
func NewRecordingTracker() *RecordingTracker {
	return &RecordingTracker{
		created: make(map[string]bool),
		deps:    make(map[string]bool),
	}
}

func (t *RecordingTracker) AddDependency(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.deps[path] {
		t.deps[path] = true
		t.list.Dependencies = append(t.list.Dependencies, path)
	}
}

func (t *RecordingTracker) AddCreated(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.created[path] {
		t.created[path] = true
		t.list.Created = append(t.list.Created, path)
	}
}

// Created returns the created files.
func (t *RecordingTracker) Created() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list.Created...)
}

// Dependencies returns the dependency files.
func (t *RecordingTracker) Dependencies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list.Dependencies...)
}

// WriteYAML writes the dependency list to w.
func (t *RecordingTracker) WriteYAML(w io.Writer) error {
	t.mu.Lock()
	list := DependencyList{
		Created:      append([]string{}, t.list.Created...),
		Dependencies: append([]string{}, t.list.Dependencies...),
	}
	t.mu.Unlock()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode dependency list: %w", err)
	}
	return enc.Close()
}

// Save writes the dependency list to path, creating parent directories.
func (t *RecordingTracker) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadDependencyList reads a list written by Save.
func LoadDependencyList(path string) (*DependencyList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list DependencyList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse dependency list %s: %w", path, err)
	}
	return &list, nil
}
