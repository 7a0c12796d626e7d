/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/suparena/texfigure/errors"
)

func TestFigSize(t *testing.T) {
	w, h, err := FigSize(PointsPerInch, 1)
	require.NoError(t, err)
	assert.InDelta(t, vg.Inch.Points(), w.Points(), 1e-9)
	assert.InDelta(t, GoldenMean, float64(h/w), 1e-12)
	assert.InDelta(t, 0.6180339887, GoldenMean, 1e-9)

	half, _, err := FigSize(PointsPerInch, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, w.Points()/2, half.Points(), 1e-9)

	for _, bad := range []struct{ width, scale float64 }{{0, 1}, {-10, 1}, {100, 0}} {
		_, _, err := FigSize(bad.width, bad.scale)
		assert.True(t, errors.IsValidationError(err), "FigSize(%g, %g)", bad.width, bad.scale)
	}
}

func TestFigSize_DefaultTextWidth(t *testing.T) {
	w, _, err := FigSize(DefaultTextWidth, DefaultScale)
	require.NoError(t, err)
	want := DefaultTextWidth / PointsPerInch * DefaultScale * 72
	assert.True(t, math.Abs(w.Points()-want) < 1e-9)
}

func TestConfigureLaTeXPlot(t *testing.T) {
	p := plot.New()
	ConfigureLaTeXPlot(p)

	assert.Equal(t, vg.Length(10), p.Title.TextStyle.Font.Size)
	assert.Equal(t, vg.Length(10), p.X.Label.TextStyle.Font.Size)
	assert.Equal(t, vg.Length(10), p.Y.Label.TextStyle.Font.Size)
	assert.Equal(t, vg.Length(8), p.X.Tick.Label.Font.Size)
	assert.Equal(t, vg.Length(8), p.Y.Tick.Label.Font.Size)
	assert.Equal(t, vg.Length(8), p.Legend.TextStyle.Font.Size)
}
