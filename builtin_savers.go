/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/suparena/texfigure/registry"
)

// DefaultDPI is the raster resolution used when no ParamDPI is given.
const DefaultDPI = 150.0

func registerBuiltinSavers(r *registry.TypeRegistry[SaveFunc]) {
	_ = registry.RegisterFor[*plot.Plot](r, SavePlot)
	_ = registry.RegisterFor[*canvas.Canvas](r, SaveCanvas)
	_ = registry.RegisterFor[image.Image](r, SaveImage)
}

// outputs returns filename followed by the same stem in every extra format
// requested through ParamFormats.
func outputs(filename string, params Params) []string {
	files := []string{filename}
	seen := map[string]bool{filename: true}
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, ext := range params.Strings(ParamFormats) {
		f := stem + registry.NormalizeExt(ext)
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	return files
}

func isRaster(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}

// SavePlot saves a *plot.Plot. The size comes from ParamWidth and
// ParamHeight. PGF output is rendered through canvas, every other format
// through plot.Save.
func SavePlot(obj any, filename string, params Params) ([]string, error) {
	p, ok := obj.(*plot.Plot)
	if !ok {
		return nil, fmt.Errorf("SavePlot: unexpected %T", obj)
	}

	dw, dh, _ := FigSize(DefaultTextWidth, DefaultScale)
	w := vg.Length(params.Float(ParamWidth, dw.Points()))
	h := vg.Length(params.Float(ParamHeight, dh.Points()))

	files := outputs(filename, params)
	for _, f := range files {
		if registry.NormalizeExt(filepath.Ext(f)) == ".pgf" {
			c := canvas.New(float64(w/vg.Millimeter), float64(h/vg.Millimeter))
			p.Draw(renderers.NewGonumPlot(c))
			if err := renderers.Write(f, c); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.Save(w, h, f); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// SaveCanvas saves a *canvas.Canvas, choosing the renderer from the file
// extension. Raster formats use ParamDPI.
func SaveCanvas(obj any, filename string, params Params) ([]string, error) {
	c, ok := obj.(*canvas.Canvas)
	if !ok {
		return nil, fmt.Errorf("SaveCanvas: unexpected %T", obj)
	}
	return writeCanvas(c, filename, params)
}

// SaveImage draws an image.Image onto a canvas sized at ParamDPI and saves
// it like SaveCanvas.
func SaveImage(obj any, filename string, params Params) ([]string, error) {
	img, ok := obj.(image.Image)
	if !ok {
		return nil, fmt.Errorf("SaveImage: unexpected %T", obj)
	}

	res := canvas.DPI(params.Float(ParamDPI, DefaultDPI))
	size := img.Bounds().Size()
	c := canvas.New(float64(size.X)/res.DPMM(), float64(size.Y)/res.DPMM())
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, res)
	return writeCanvas(c, filename, params)
}

func writeCanvas(c *canvas.Canvas, filename string, params Params) ([]string, error) {
	res := canvas.DPI(params.Float(ParamDPI, DefaultDPI))

	files := outputs(filename, params)
	for _, f := range files {
		var opts []interface{}
		if isRaster(registry.NormalizeExt(filepath.Ext(f))) {
			opts = append(opts, res)
		}
		if err := renderers.Write(f, c, opts...); err != nil {
			return nil, err
		}
	}
	return files, nil
}
