/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package filestore keeps figure records in a YAML manifest file.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/storagemodels"
)

// DefaultFileName is the manifest name used when only a directory is known.
const DefaultFileName = "figures.yaml"

// Manifest is the on-disk layout of the store.
type Manifest struct {
	Document string                       `yaml:"document,omitempty"`
	Figures  []storagemodels.FigureRecord `yaml:"figures"`
}

// Store implements datastore.DataStore[storagemodels.FigureRecord] on top of a
// manifest file. Every write rewrites the whole file through a temporary file.
// Records keep the position of their first Put.
type Store struct {
	mu       sync.Mutex
	path     string
	document string
}

// New returns a store backed by the manifest at path. The file is created on
// the first Put; document is written into the manifest header.
func New(path, document string) *Store {
	return &Store{path: path, document: document}
}

// Path returns the manifest location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the manifest. A missing file yields an empty manifest.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Manifest{Document: s.document}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", s.path, err)
	}
	if m.Document == "" {
		m.Document = s.document
	}
	return &m, nil
}

func (s *Store) save(m *Manifest) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".figures-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// matches accepts either the "<document>/<key>" ID or a bare figure key. A
// bare key only matches records of document, so chapters sharing a manifest
// do not shadow each other.
func matches(rec storagemodels.FigureRecord, key, document string) bool {
	if rec.ID() == key {
		return true
	}
	return rec.Key == key && (rec.Document == "" || rec.Document == document)
}

// scope is the document bare keys resolve against.
func (s *Store) scope(m *Manifest) string {
	if s.document != "" {
		return s.document
	}
	return m.Document
}

// GetOne returns the record stored under key.
func (s *Store) GetOne(ctx context.Context, key string) (*storagemodels.FigureRecord, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	doc := s.scope(m)
	for i := range m.Figures {
		if matches(m.Figures[i], key, doc) {
			rec := m.Figures[i]
			return &rec, nil
		}
	}
	return nil, errors.NewNotFoundError("figure record", key)
}

// Put inserts or replaces the record with the same document and key.
func (s *Store) Put(ctx context.Context, rec storagemodels.FigureRecord) error {
	if rec.Key == "" {
		return errors.NewValidationError("key", "figure record has no key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range m.Figures {
		if m.Figures[i].ID() == rec.ID() {
			m.Figures[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		m.Figures = append(m.Figures, rec)
	}
	return s.save(m)
}

// Delete removes the record stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	doc := s.scope(m)
	for i := range m.Figures {
		if matches(m.Figures[i], key, doc) {
			m.Figures = append(m.Figures[:i], m.Figures[i+1:]...)
			return s.save(m)
		}
	}
	return errors.NewNotFoundError("figure record", key)
}

// List returns the records in manifest order.
func (s *Store) List(ctx context.Context) ([]storagemodels.FigureRecord, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	return m.Figures, nil
}
