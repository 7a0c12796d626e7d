/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"strings"

	"github.com/suparena/texfigure/errors"
)

// MultiFigure groups several Figures into one figure* environment laid out
// as an nrows by ncols grid of subfigures, filled row by row.
type MultiFigure struct {
	NRows     int
	NCols     int
	Reference string

	Caption     string
	Label       string
	Frontmatter string

	slots []*Figure
}

// MaxGridCells bounds nrows*ncols of a MultiFigure.
const MaxGridCells = 1024

// NewMultiFigure creates an empty grid.
func NewMultiFigure(nrows, ncols int, reference string) (*MultiFigure, error) {
	if nrows <= 0 || ncols <= 0 {
		return nil, errors.NewValidationError("grid", fmt.Sprintf("%dx%d is not a valid grid", nrows, ncols))
	}
	if nrows > MaxGridCells/ncols {
		return nil, errors.NewValidationError("grid",
			fmt.Sprintf("%dx%d exceeds %d subfigures", nrows, ncols, MaxGridCells))
	}
	return &MultiFigure{
		NRows:       nrows,
		NCols:       ncols,
		Reference:   reference,
		Caption:     "MultiFigure " + reference,
		Label:       "fig:" + reference,
		Frontmatter: `\centering`,
		slots:       make([]*Figure, nrows*ncols),
	}, nil
}

// MultiFigureOf creates a grid holding figs in order.
func MultiFigureOf(nrows, ncols int, reference string, figs ...*Figure) (*MultiFigure, error) {
	mf, err := NewMultiFigure(nrows, ncols, reference)
	if err != nil {
		return nil, err
	}
	if len(figs) > mf.Capacity() {
		return nil, errors.NewValidationError("figures", fmt.Sprintf("%d figures do not fit a %dx%d grid", len(figs), nrows, ncols))
	}
	for _, fig := range figs {
		if err := mf.Append(fig); err != nil {
			return nil, err
		}
	}
	return mf, nil
}

// Capacity is the number of slots in the grid.
func (mf *MultiFigure) Capacity() int {
	return len(mf.slots)
}

// Len is the number of filled slots.
func (mf *MultiFigure) Len() int {
	n := 0
	for _, f := range mf.slots {
		if f != nil {
			n++
		}
	}
	return n
}

// Append puts fig in the next empty slot.
func (mf *MultiFigure) Append(fig *Figure) error {
	if fig == nil {
		return errors.NewValidationError("figure", "cannot append a nil figure")
	}
	for i, f := range mf.slots {
		if f == nil {
			mf.slots[i] = fig
			return nil
		}
	}
	return errors.NewCapacityError("MultiFigure "+mf.Reference, mf.Capacity())
}

// Figures returns the filled slots in grid order.
func (mf *MultiFigure) Figures() []*Figure {
	out := make([]*Figure, 0, len(mf.slots))
	for _, f := range mf.slots {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// FileNames returns the file names of every constituent, in slot order.
func (mf *MultiFigure) FileNames() []string {
	var names []string
	for _, f := range mf.Figures() {
		names = append(names, f.FileNames...)
	}
	return names
}

// LaTeX renders the figure* environment. A newline starts every row.
func (mf *MultiFigure) LaTeX() (string, error) {
	var b strings.Builder
	for i, f := range mf.slots {
		if f == nil {
			continue
		}
		if i%mf.NCols == 0 {
			b.WriteString("\n")
		}
		sub, err := f.Subfigure()
		if err != nil {
			return "", fmt.Errorf("subfigure %q: %w", f.Key, err)
		}
		b.WriteString(sub)
	}
	return fmt.Sprintf("\n\\begin{figure*}\n    %s\n    %s\n    \\caption{%s}\n    \\label{%s}\n\\end{figure*}\n",
		mf.Frontmatter, b.String(), mf.Caption, mf.Label), nil
}

// String returns the LaTeX rendering, or a LaTeX comment naming the problem.
func (mf *MultiFigure) String() string {
	s, err := mf.LaTeX()
	if err != nil {
		return "% texfigure: " + err.Error() + "\n"
	}
	return s
}
