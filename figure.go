/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/registry"
)

// Presentation defaults applied to every new Figure.
const (
	DefaultPlacement       = "h"
	DefaultWidth           = `0.95\columnwidth`
	DefaultSubfigWidth     = `0.45\columnwidth`
	DefaultSubfigPlacement = "b"
)

// Figure is a saved figure that renders itself as a LaTeX figure environment.
type Figure struct {
	Key       string
	FileNames []string
	Number    int

	Reference       string
	Caption         string
	Label           string
	Placement       string
	Width           string
	SubfigWidth     string
	SubfigPlacement string
}

// NewFigure creates a Figure for files with the presentation defaults derived
// from key. File names are made absolute.
func NewFigure(key string, fileNames ...string) (*Figure, error) {
	if len(fileNames) == 0 {
		return nil, errors.NewValidationError("fileNames", "a figure needs at least one file")
	}

	abs := make([]string, len(fileNames))
	for i, name := range fileNames {
		p, err := filepath.Abs(name)
		if err != nil {
			return nil, err
		}
		abs[i] = p
	}

	ref := strings.ReplaceAll(key, "_", "-")
	if ref == "" {
		base := filepath.Base(abs[0])
		ref = strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), "_", "-")
	}

	return &Figure{
		Key:             key,
		FileNames:       abs,
		Reference:       ref,
		Caption:         "Figure " + ref,
		Label:           "fig:" + ref,
		Placement:       DefaultPlacement,
		Width:           DefaultWidth,
		SubfigWidth:     DefaultSubfigWidth,
		SubfigPlacement: DefaultSubfigPlacement,
	}, nil
}

// FileName returns the primary file, the one included in LaTeX.
func (f *Figure) FileName() string {
	if len(f.FileNames) == 0 {
		return ""
	}
	return f.FileNames[0]
}

// Ext returns the lowercased extension of the primary file.
func (f *Figure) Ext() string {
	return registry.NormalizeExt(filepath.Ext(f.FileName()))
}

// IncludeFunc renders the LaTeX command that includes file at width.
type IncludeFunc func(file, width string) string

var includes = registry.NewExtensionRegistry[IncludeFunc]()

func init() {
	includes.Register(importInclude, ".pgf", ".tex")
	includes.Register(graphicsInclude, ".pdf", ".png", ".jpg", ".jpeg", ".eps")
	includes.Register(svgInclude, ".svg")
}

func importInclude(file, _ string) string {
	return fmt.Sprintf(`\IfFileExists{%s}{\import{%s/}{%s}}{}`, file, filepath.Dir(file), filepath.Base(file))
}

func graphicsInclude(file, width string) string {
	return fmt.Sprintf(`\includegraphics[width=%s]{%s}`, width, file)
}

func svgInclude(file, width string) string {
	return fmt.Sprintf(`\includesvg[width=%s]{%s}`, width, file)
}

// RegisterInclude makes figures whose primary file has one of exts render
// with fn. Existing mappings are replaced.
func RegisterInclude(fn IncludeFunc, exts ...string) {
	includes.Register(fn, exts...)
}

// Include returns the include command for the primary file.
func (f *Figure) Include() (string, error) {
	fn, ok := includes.Lookup(f.Ext())
	if !ok {
		return "", errors.NewUnsupportedTypeError("include", "extension "+f.Ext())
	}
	return fn(f.FileName(), f.Width), nil
}

// LaTeX renders the figure environment.
func (f *Figure) LaTeX() (string, error) {
	inc, err := f.Include()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("\n\\begin{figure}[%s]\n    \\centering\n    %s\n    \\caption{%s}\n    \\label{%s}\n\\end{figure}\n",
		f.Placement, inc, f.Caption, f.Label), nil
}

// Subfigure renders the figure as a subfigure environment for a MultiFigure.
func (f *Figure) Subfigure() (string, error) {
	inc, err := f.Include()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("\n    \\begin{subfigure}[%s]{%s}\n        %s\n        \\caption{%s}\n        \\label{%s}\n    \\end{subfigure}",
		f.SubfigPlacement, f.SubfigWidth, inc, f.Caption, f.Label), nil
}

// String returns the LaTeX figure environment, or a LaTeX comment naming the
// problem when the figure cannot be rendered.
func (f *Figure) String() string {
	s, err := f.LaTeX()
	if err != nil {
		return "% texfigure: " + err.Error() + "\n"
	}
	return s
}
