/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingTracker(t *testing.T) {
	tr := NewRecordingTracker()
	tr.AddCreated("/b.pdf")
	tr.AddCreated("/a.pdf")
	tr.AddCreated("/b.pdf")
	tr.AddDependency("/data.csv")
	tr.AddDependency("/data.csv")

	assert.Equal(t, []string{"/b.pdf", "/a.pdf"}, tr.Created())
	assert.Equal(t, []string{"/data.csv"}, tr.Dependencies())

	var buf bytes.Buffer
	require.NoError(t, tr.WriteYAML(&buf))
	assert.Equal(t, "created:\n  - /b.pdf\n  - /a.pdf\ndependencies:\n  - /data.csv\n", buf.String())
}

func TestRecordingTracker_SaveAndLoad(t *testing.T) {
	tr := NewRecordingTracker()
	tr.AddCreated("/fig.pgf")

	path := filepath.Join(t.TempDir(), "build", "deps.yaml")
	require.NoError(t, tr.Save(path))

	list, err := LoadDependencyList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/fig.pgf"}, list.Created)
	assert.Empty(t, list.Dependencies)
}

func TestNopTracker(t *testing.T) {
	var tr Tracker = NopTracker{}
	tr.AddCreated("x")
	tr.AddDependency("y")
}
