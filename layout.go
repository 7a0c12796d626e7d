/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/suparena/texfigure/errors"
)

// PointsPerInch is the TeX point: 72.27 per inch.
const PointsPerInch = 72.27

// GoldenMean is the height to width ratio of a default figure.
var GoldenMean = (math.Sqrt(5) - 1) / 2

// LaTeX font sizes applied by ConfigureLaTeXPlot.
const (
	LabelFontSize vg.Length = 10
	TickFontSize  vg.Length = 8
)

// FigSize returns the size of a figure spanning scale times a text width
// of textWidthPt TeX points, with golden-mean proportions.
func FigSize(textWidthPt, scale float64) (w, h vg.Length, err error) {
	if textWidthPt <= 0 {
		return 0, 0, errors.NewValidationError("textWidth", fmt.Sprintf("%g is not a positive width", textWidthPt))
	}
	if scale <= 0 {
		return 0, 0, errors.NewValidationError("scale", fmt.Sprintf("%g is not a positive scale", scale))
	}
	inches := textWidthPt / PointsPerInch * scale
	w = vg.Length(inches) * vg.Inch
	h = w * vg.Length(GoldenMean)
	return w, h, nil
}

// ConfigureLaTeXPlot sets font sizes that match a 10pt LaTeX document.
func ConfigureLaTeXPlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = LabelFontSize
	p.X.Label.TextStyle.Font.Size = LabelFontSize
	p.Y.Label.TextStyle.Font.Size = LabelFontSize
	p.X.Tick.Label.Font.Size = TickFontSize
	p.Y.Tick.Label.Font.Size = TickFontSize
	p.Legend.TextStyle.Font.Size = TickFontSize
}
