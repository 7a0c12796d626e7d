/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/registry"
	"github.com/suparena/texfigure/storagemodels"
)

// Manager tracks the figure, data and code directories of one document
// (or chapter) and the figures saved into it.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	tracker Tracker
	logger  zerolog.Logger

	baseDir string
	figDir  string
	dataDir string
	codeDir string

	searchPath *SearchPath
	number     int
	figCount   int
	defaultExt string
	textWidth  float64
	document   string

	saveFuncs *registry.TypeRegistry[SaveFunc]
	stores    *StoreSet[storagemodels.FigureRecord]

	keys    []string
	figures map[string]*Figure
}

// NewManager creates the base directory and every enabled sub-directory
// under baseDir, and appends the code directory to the search path.
// A nil tracker is replaced by NopTracker. Filesystem errors are returned
// as they are; directories created before the failure are left in place.
func NewManager(tracker Tracker, baseDir string, opts ...Option) (*Manager, error) {
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if tracker == nil {
		tracker = NopTracker{}
	}
	if baseDir == "" {
		baseDir = "."
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
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
	if o.document == "" {
		o.document = fmt.Sprintf("Chapter%d", o.number)
	}

	m := &Manager{
		tracker:    tracker,
		logger:     logger.With().Str("document", o.document).Logger(),
		baseDir:    base,
		searchPath: o.searchPath,
		number:     o.number,
		figCount:   1,
		defaultExt: registry.NormalizeExt(o.defaultExt),
		textWidth:  o.textWidth,
		document:   o.document,
		saveFuncs:  registry.NewTypeRegistry[SaveFunc](),
		stores:     o.storeSet,
		figures:    make(map[string]*Figure),
	}
	registerBuiltinSavers(m.saveFuncs)

	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	if m.codeDir, err = m.addDir(o.codeDir); err != nil {
		return nil, err
	}
	if m.dataDir, err = m.addDir(o.dataDir); err != nil {
		return nil, err
	}
	if m.figDir, err = m.addDir(o.figDir); err != nil {
		return nil, err
	}
	if m.codeDir != "" {
		m.searchPath.Append(m.codeDir)
	}

	m.logger.Debug().
		Str("base", m.baseDir).
		Str("figs", m.figDir).
		Str("data", m.dataDir).
		Str("code", m.codeDir).
		Msg("manager ready")
	return m, nil
}

func (m *Manager) addDir(d dirOption) (string, error) {
	if d.disabled || d.name == "" {
		return "", nil
	}
	dir := d.name
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.baseDir, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// BaseDir returns the absolute base directory.
func (m *Manager) BaseDir() string { return m.baseDir }

// FigDir returns the figure directory, empty when disabled.
func (m *Manager) FigDir() string { return m.figDir }

// DataDir returns the data directory, empty when disabled.
func (m *Manager) DataDir() string { return m.dataDir }

// CodeDir returns the code directory, empty when disabled.
func (m *Manager) CodeDir() string { return m.codeDir }

// SearchPath returns the search path the code directory was appended to.
func (m *Manager) SearchPath() *SearchPath { return m.searchPath }

// Number returns the chapter number.
func (m *Manager) Number() int { return m.number }

// FigureCount returns the number the next registered figure will get.
func (m *Manager) FigureCount() int { return m.figCount }

// Document returns the document name recorded on published figure records.
func (m *Manager) Document() string { return m.document }

// Tracker returns the tracker files are reported to.
func (m *Manager) Tracker() Tracker { return m.tracker }

// Stores returns the record stores figure records are published to.
func (m *Manager) Stores() *StoreSet[storagemodels.FigureRecord] { return m.stores }

// DataFile returns the path of name in the data directory and reports it to
// the tracker as a dependency.
func (m *Manager) DataFile(name string) (string, error) {
	if m.dataDir == "" {
		return "", errors.NewValidationError("dataDir", "data directory is disabled")
	}
	p := filepath.Join(m.dataDir, name)
	m.tracker.AddDependency(p)
	return p, nil
}

// MakeFigureFilename returns Chapter<n>-Figure<count>-<key><ext>, or
// name<ext> when name is given. With fullPath the figure directory is
// prepended.
func (m *Manager) MakeFigureFilename(key, name, ext string, fullPath bool) string {
	if name == "" {
		name = fmt.Sprintf("Chapter%d-Figure%d-%s", m.number, m.figCount, key)
	}
	name += ext
	if fullPath {
		name = filepath.Join(m.figDir, name)
	}
	return name
}

// AddFigure registers fig under key. The figure is numbered, its files
// are reported to the tracker as created and its record is published.
// An existing entry for key is replaced in place.
func (m *Manager) AddFigure(ctx context.Context, key string, fig *Figure) error {
	if key == "" {
		return errors.NewValidationError("key", "figure key must not be empty")
	}
	if fig == nil {
		return errors.NewValidationError("figure", "cannot add a nil figure")
	}

	fig.Key = key
	fig.Number = m.figCount
	for _, f := range fig.FileNames {
		m.tracker.AddCreated(f)
	}

	if _, exists := m.figures[key]; exists {
		m.logger.Debug().Str("key", key).Msg("replacing figure")
	} else {
		m.keys = append(m.keys, key)
	}
	m.figures[key] = fig
	m.figCount++

	return m.publish(ctx, fig)
}

func (m *Manager) publish(ctx context.Context, fig *Figure) error {
	if m.stores.Len() == 0 {
		return nil
	}
	if err := m.stores.PutAll(ctx, m.record(fig)); err != nil {
		m.logger.Warn().Err(err).Str("key", fig.Key).Msg("publishing figure record failed")
		return fmt.Errorf("publish figure %q: %w", fig.Key, err)
	}
	return nil
}

// RegisterFile registers an existing file as a figure. A relative path is
// resolved against the figure directory, or the base directory when the
// figure directory is disabled.
func (m *Manager) RegisterFile(ctx context.Context, key, path string, opts ...SaveOption) (*Figure, error) {
	if !filepath.IsAbs(path) {
		dir := m.figDir
		if dir == "" {
			dir = m.baseDir
		}
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	fig, err := NewFigure(key, path)
	if err != nil {
		return nil, err
	}
	newSaveOptions(opts).apply(fig)
	return fig, m.AddFigure(ctx, key, fig)
}

// GetFigure returns the figure registered under key.
func (m *Manager) GetFigure(key string) (*Figure, error) {
	fig, ok := m.figures[key]
	if !ok {
		return nil, errors.NewNotFoundError("figure", key)
	}
	return fig, nil
}

// BuildFigure applies presentation options to the figure registered under
// key, republishes its record and returns it. As with AddFigure, a publish
// failure is returned together with the updated figure.
func (m *Manager) BuildFigure(ctx context.Context, key string, opts ...SaveOption) (*Figure, error) {
	fig, err := m.GetFigure(key)
	if err != nil {
		return nil, err
	}
	newSaveOptions(opts).apply(fig)
	return fig, m.publish(ctx, fig)
}

// Keys returns the registered keys in registration order.
func (m *Manager) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Figures returns the registered figures in registration order.
func (m *Manager) Figures() []*Figure {
	out := make([]*Figure, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.figures[k]
	}
	return out
}

// Len returns the number of registered figures.
func (m *Manager) Len() int { return len(m.keys) }

// GetMultiFigure builds a MultiFigure from registered figures, in the order
// of keys.
func (m *Manager) GetMultiFigure(nrows, ncols int, keys []string, reference string) (*MultiFigure, error) {
	mf, err := NewMultiFigure(nrows, ncols, reference)
	if err != nil {
		return nil, err
	}
	if len(keys) > mf.Capacity() {
		return nil, errors.NewValidationError("keys",
			fmt.Sprintf("%d keys do not fit a %dx%d grid", len(keys), nrows, ncols))
	}
	for _, k := range keys {
		fig, err := m.GetFigure(k)
		if err != nil {
			return nil, err
		}
		if err := mf.Append(fig); err != nil {
			return nil, err
		}
	}
	return mf, nil
}

// Record returns the record published for fig.
func (m *Manager) Record(fig *Figure) storagemodels.FigureRecord {
	return m.record(fig)
}

func (m *Manager) record(fig *Figure) storagemodels.FigureRecord {
	return storagemodels.FigureRecord{
		Document:    m.document,
		Key:         fig.Key,
		Number:      fig.Number,
		FileNames:   append([]string(nil), fig.FileNames...),
		Caption:     fig.Caption,
		Label:       fig.Label,
		Placement:   fig.Placement,
		Width:       fig.Width,
		SubfigWidth: fig.SubfigWidth,
		SavedAt:     strfmt.DateTime(time.Now().UTC()),
	}
}

// FigureFromRecord rebuilds a Figure from a published record.
func FigureFromRecord(rec storagemodels.FigureRecord) (*Figure, error) {
	fig, err := NewFigure(rec.Key, rec.FileNames...)
	if err != nil {
		return nil, err
	}
	fig.Number = rec.Number
	if rec.Caption != "" {
		fig.Caption = rec.Caption
	}
	if rec.Label != "" {
		fig.Label = rec.Label
	}
	if rec.Placement != "" {
		fig.Placement = rec.Placement
	}
	if rec.Width != "" {
		fig.Width = rec.Width
	}
	if rec.SubfigWidth != "" {
		fig.SubfigWidth = rec.SubfigWidth
	}
	return fig, nil
}
