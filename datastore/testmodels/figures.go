package testmodels

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/texfigure/storagemodels"
)

// SavedAt is the fixed timestamp used by the fixtures.
var SavedAt = strfmt.DateTime(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))

// VelocityRecord is a single-file figure record.
func VelocityRecord() storagemodels.FigureRecord {
	return storagemodels.FigureRecord{
		Document:  "thesis",
		Key:       "velocity",
		Number:    1,
		FileNames: []string{"/work/Chapter1/Figs/Chapter1-Figure1-velocity.pdf"},
		Caption:   "Velocity profile",
		Label:     "fig:velocity",
		Placement: "h",
		Width:     `0.5\textwidth`,
		SavedAt:   SavedAt,
	}
}

// SpectrumRecord is a figure record saved in two formats.
func SpectrumRecord() storagemodels.FigureRecord {
	return storagemodels.FigureRecord{
		Document: "thesis",
		Key:      "spectrum",
		Number:   2,
		FileNames: []string{
			"/work/Chapter1/Figs/Chapter1-Figure2-spectrum.pgf",
			"/work/Chapter1/Figs/Chapter1-Figure2-spectrum.png",
		},
		Caption: "Power spectrum",
		Label:   "fig:spectrum",
		SavedAt: SavedAt,
	}
}
