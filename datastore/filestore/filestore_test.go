/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/texfigure/datastore"
	"github.com/suparena/texfigure/datastore/testmodels"
	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/storagemodels"
)

var _ datastore.DataStore[storagemodels.FigureRecord] = (*Store)(nil)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	store := New(path, "thesis")

	velocity := testmodels.VelocityRecord()
	spectrum := testmodels.SpectrumRecord()
	require.NoError(t, store.Put(ctx, velocity))
	require.NoError(t, store.Put(ctx, spectrum))

	// a second store instance reads the same manifest back
	reread := New(path, "")
	got, err := reread.GetOne(ctx, "spectrum")
	require.NoError(t, err)
	assert.Equal(t, spectrum.FileNames, got.FileNames)
	assert.Equal(t, spectrum.Caption, got.Caption)
	assert.Equal(t, testmodels.SavedAt.String(), got.SavedAt.String())

	got, err = reread.GetOne(ctx, velocity.ID())
	require.NoError(t, err)
	assert.Equal(t, "velocity", got.Key)
	assert.Equal(t, velocity.Width, got.Width)

	m, err := reread.Load()
	require.NoError(t, err)
	assert.Equal(t, "thesis", m.Document)
}

func TestStorePutReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), DefaultFileName), "thesis")

	require.NoError(t, store.Put(ctx, testmodels.VelocityRecord()))
	require.NoError(t, store.Put(ctx, testmodels.SpectrumRecord()))

	updated := testmodels.VelocityRecord()
	updated.Caption = "Updated caption"
	require.NoError(t, store.Put(ctx, updated))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "velocity", list[0].Key)
	assert.Equal(t, "Updated caption", list[0].Caption)
	assert.Equal(t, "spectrum", list[1].Key)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), DefaultFileName), "thesis")

	require.NoError(t, store.Put(ctx, testmodels.VelocityRecord()))
	require.NoError(t, store.Delete(ctx, "velocity"))

	_, err := store.GetOne(ctx, "velocity")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(store.Delete(ctx, "velocity")))
}

func TestStoreMissingAndInvalid(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	empty := New(filepath.Join(dir, "absent.yaml"), "doc")
	list, err := empty.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = empty.Put(ctx, storagemodels.FigureRecord{})
	assert.True(t, errors.IsValidationError(err))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("figures: [unclosed"), 0o644))
	_, err = New(bad, "doc").List(ctx)
	assert.Error(t, err)
}

func TestStoreKeepsDocumentsApart(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), DefaultFileName), "Chapter1")

	first := storagemodels.FigureRecord{Document: "Chapter1", Key: "intro", Caption: "first"}
	second := storagemodels.FigureRecord{Document: "Chapter2", Key: "intro", Caption: "second"}
	require.NoError(t, store.Put(ctx, first))
	require.NoError(t, store.Put(ctx, second))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := store.GetOne(ctx, "Chapter1/intro")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Caption)

	got, err = store.GetOne(ctx, "Chapter2/intro")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Caption)

	// a bare key resolves within the store's own document
	got, err = store.GetOne(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, "Chapter1", got.Document)

	second.Caption = "second, updated"
	require.NoError(t, store.Put(ctx, second))
	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Caption)
	assert.Equal(t, "second, updated", list[1].Caption)

	require.NoError(t, store.Delete(ctx, "intro"))
	_, err = store.GetOne(ctx, "Chapter1/intro")
	assert.True(t, errors.IsNotFound(err))
	_, err = store.GetOne(ctx, "Chapter2/intro")
	require.NoError(t, err)
}
