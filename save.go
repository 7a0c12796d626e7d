/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/registry"
)

// SaveFunc writes obj to filename and returns the written paths. An empty
// result means filename alone was written. obj is the value of the type the
// function was registered for, which may be an embedded field of the object
// passed to SaveFigure.
type SaveFunc func(obj any, filename string, params Params) ([]string, error)

// RegisterSaveFunc makes SaveFigure use fn for objects of type t, for types
// embedding t and, when t is an interface, for types implementing it.
// An existing entry for t is replaced.
func (m *Manager) RegisterSaveFunc(t reflect.Type, fn SaveFunc) error {
	if fn == nil {
		return errors.NewValidationError("saveFunc", "save function must not be nil")
	}
	if err := m.saveFuncs.Register(t, fn); err != nil {
		return errors.NewValidationError("type", err.Error())
	}
	m.logger.Debug().Stringer("type", t).Msg("save function registered")
	return nil
}

// RegisterSaveFuncFor registers fn for the static type T.
func RegisterSaveFuncFor[T any](m *Manager, fn SaveFunc) error {
	return m.RegisterSaveFunc(reflect.TypeFor[T](), fn)
}

// SaveFuncs returns the save-dispatch table.
func (m *Manager) SaveFuncs() *registry.TypeRegistry[SaveFunc] {
	return m.saveFuncs
}

// resolveSaveFunc finds the save function for obj and the value it should
// be called with.
func (m *Manager) resolveSaveFunc(obj any) (SaveFunc, any, error) {
	v := reflect.ValueOf(obj)
	match, ok := m.saveFuncs.Resolve(v.Type())
	if !ok {
		return nil, nil, errors.NewUnsupportedTypeError("save function", v.Type().String())
	}
	if match.Direct() {
		return match.Value, obj, nil
	}
	target, err := match.Extract(v)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve save function for %s: %w", v.Type(), err)
	}
	return match.Value, target.Interface(), nil
}

// SaveFigure saves obj with the save function registered for its type and
// registers the result under key.
//
// The file is written to the figure directory as
// Chapter<n>-Figure<count>-<key><ext> unless WithFileName is given. A failing
// save function leaves the registry untouched. A failure to publish the
// figure record is returned after the figure has been registered.
func (m *Manager) SaveFigure(ctx context.Context, key string, obj any, opts ...SaveOption) (*Figure, error) {
	if key == "" {
		return nil, errors.NewValidationError("key", "figure key must not be empty")
	}
	if obj == nil {
		return nil, errors.NewValidationError("figure", "cannot save a nil figure")
	}
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, errors.NewValidationError("figure", fmt.Sprintf("cannot save a nil %T", obj))
	}
	if m.figDir == "" {
		return nil, errors.NewValidationError("figDir", "figure directory is disabled")
	}

	fn, target, err := m.resolveSaveFunc(obj)
	if err != nil {
		return nil, err
	}

	so := newSaveOptions(opts)
	ext := so.ext
	if ext == "" {
		ext = m.defaultExt
	}
	filename := m.MakeFigureFilename(key, so.fileName, registry.NormalizeExt(ext), true)
	m.defaultSize(so.params)

	paths, err := fn(target, filename, so.params)
	if err != nil {
		return nil, fmt.Errorf("save figure %q: %w", key, err)
	}
	if len(paths) == 0 {
		paths = []string{filename}
	}

	fig, err := NewFigure(key, paths...)
	if err != nil {
		return nil, err
	}
	so.apply(fig)

	m.logger.Info().Str("key", key).Strs("files", fig.FileNames).Msg("figure saved")
	return fig, m.AddFigure(ctx, key, fig)
}

func (m *Manager) defaultSize(params Params) {
	if _, ok := params[ParamWidth]; ok {
		return
	}
	w, h, err := FigSize(m.textWidth, DefaultScale)
	if err != nil {
		return
	}
	params[ParamWidth] = w
	if _, ok := params[ParamHeight]; !ok {
		params[ParamHeight] = h
	}
}
