/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"github.com/rs/zerolog"

	"github.com/suparena/texfigure/datastore"
	"github.com/suparena/texfigure/storagemodels"
)

const (
	// DefaultFigDir, DefaultDataDir and DefaultCodeDir are the directory names
	// created under the base directory unless overridden.
	DefaultFigDir  = "Figs"
	DefaultDataDir = "Data"
	DefaultCodeDir = "Code"

	// DefaultExt is the extension used when SaveFigure is not given one.
	DefaultExt = ".pdf"

	// DefaultTextWidth is the LaTeX \textwidth, in points, of a standard
	// one-column article.
	DefaultTextWidth = 345.0

	// DefaultScale is the fraction of the text width a default-sized plot spans.
	DefaultScale = 0.95
)

type dirOption struct {
	name     string
	disabled bool
}

type namedStore struct {
	name  string
	store datastore.DataStore[storagemodels.FigureRecord]
}

type managerOptions struct {
	figDir     dirOption
	dataDir    dirOption
	codeDir    dirOption
	searchPath *SearchPath
	number     int
	defaultExt string
	textWidth  float64
	logger     *zerolog.Logger
	stores     []namedStore
	storeSet   *StoreSet[storagemodels.FigureRecord]
	document   string
}

func defaultManagerOptions() managerOptions {
	return managerOptions{
		figDir:     dirOption{name: DefaultFigDir},
		dataDir:    dirOption{name: DefaultDataDir},
		codeDir:    dirOption{name: DefaultCodeDir},
		number:     1,
		defaultExt: DefaultExt,
		textWidth:  DefaultTextWidth,
	}
}

// Option configures a Manager.
type Option func(*managerOptions)

// WithFigDir sets the figure directory. A relative name is joined to the base directory.
func WithFigDir(name string) Option {
	return func(o *managerOptions) { o.figDir = dirOption{name: name} }
}

// WithDataDir sets the data directory. A relative name is joined to the base directory.
func WithDataDir(name string) Option {
	return func(o *managerOptions) { o.dataDir = dirOption{name: name} }
}

// WithCodeDir sets the code directory. A relative name is joined to the base directory.
func WithCodeDir(name string) Option {
	return func(o *managerOptions) { o.codeDir = dirOption{name: name} }
}

// WithoutFigDir disables the figure directory. SaveFigure fails on such a Manager.
func WithoutFigDir() Option {
	return func(o *managerOptions) { o.figDir = dirOption{disabled: true} }
}

// WithoutDataDir disables the data directory.
func WithoutDataDir() Option {
	return func(o *managerOptions) { o.dataDir = dirOption{disabled: true} }
}

// WithoutCodeDir disables the code directory. Nothing is added to the search path.
func WithoutCodeDir() Option {
	return func(o *managerOptions) { o.codeDir = dirOption{disabled: true} }
}

// WithSearchPath makes the Manager append its code directory to sp instead
// of a private search path.
func WithSearchPath(sp *SearchPath) Option {
	return func(o *managerOptions) { o.searchPath = sp }
}

// WithNumber sets the chapter number used in generated file names.
func WithNumber(n int) Option {
	return func(o *managerOptions) { o.number = n }
}

// WithDefaultExt sets the extension used when SaveFigure is not given one.
func WithDefaultExt(ext string) Option {
	return func(o *managerOptions) { o.defaultExt = ext }
}

// WithTextWidth sets the document text width in points, used to size plots
// saved without an explicit width.
func WithTextWidth(pt float64) Option {
	return func(o *managerOptions) { o.textWidth = pt }
}

// WithLogger sets the logger. The global zerolog logger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(o *managerOptions) { o.logger = &l }
}

// WithRecordStore publishes a FigureRecord to ds after every registration.
func WithRecordStore(name string, ds datastore.DataStore[storagemodels.FigureRecord]) Option {
	return func(o *managerOptions) { o.stores = append(o.stores, namedStore{name: name, store: ds}) }
}

// WithStoreSet publishes figure records to every store in set. Stores added
// with WithRecordStore are registered into it.
func WithStoreSet(set *StoreSet[storagemodels.FigureRecord]) Option {
	return func(o *managerOptions) { o.storeSet = set }
}

func withoutRecordStores() Option {
	return func(o *managerOptions) { o.stores = nil }
}

// WithDocument names the document recorded on published figure records.
func WithDocument(name string) Option {
	return func(o *managerOptions) { o.document = name }
}

// Params carries save-function arguments.
type Params map[string]any

// Well-known Params keys understood by the built-in save functions.
const (
	ParamWidth   = "width"   // vg.Length or float64 points
	ParamHeight  = "height"  // vg.Length or float64 points
	ParamDPI     = "dpi"     // float64, raster resolution
	ParamFormats = "formats" // []string of extra extensions
)

// String returns the string stored under key, or def.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Float returns the number stored under key, or def.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case interface{ Points() float64 }:
		return v.Points()
	}
	return def
}

// Strings returns the string slice stored under key.
func (p Params) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

type saveOptions struct {
	fileName  string
	ext       string
	caption   *string
	label     *string
	placement *string
	width     *string
	params    Params
}

// SaveOption configures a single SaveFigure, RegisterFile or BuildFigure call.
type SaveOption func(*saveOptions)

func newSaveOptions(opts []SaveOption) *saveOptions {
	so := &saveOptions{params: Params{}}
	for _, opt := range opts {
		opt(so)
	}
	return so
}

// WithFileName replaces the generated file name stem.
func WithFileName(name string) SaveOption {
	return func(o *saveOptions) { o.fileName = name }
}

// WithExt sets the file extension of the saved figure.
func WithExt(ext string) SaveOption {
	return func(o *saveOptions) { o.ext = ext }
}

// WithFormats asks the save function to also write the figure in the given
// formats, next to the primary file.
func WithFormats(exts ...string) SaveOption {
	return func(o *saveOptions) { o.params[ParamFormats] = exts }
}

// WithCaption sets the figure caption.
func WithCaption(caption string) SaveOption {
	return func(o *saveOptions) { o.caption = &caption }
}

// WithLabel sets the figure label.
func WithLabel(label string) SaveOption {
	return func(o *saveOptions) { o.label = &label }
}

// WithPlacement sets the figure placement specifier.
func WithPlacement(placement string) SaveOption {
	return func(o *saveOptions) { o.placement = &placement }
}

// WithWidth sets the include width, e.g. `0.5\textwidth`.
func WithWidth(width string) SaveOption {
	return func(o *saveOptions) { o.width = &width }
}

// WithParam passes an arbitrary argument to the save function.
func WithParam(key string, value any) SaveOption {
	return func(o *saveOptions) { o.params[key] = value }
}

func (o *saveOptions) apply(fig *Figure) {
	if o.caption != nil {
		fig.Caption = *o.caption
	}
	if o.label != nil {
		fig.Label = *o.label
	}
	if o.placement != nil {
		fig.Placement = *o.placement
	}
	if o.width != nil {
		fig.Width = *o.width
	}
}
