//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/suparena/texfigure"
	"github.com/suparena/texfigure/datastore/ddb"
	"github.com/suparena/texfigure/datastore/filestore"
	"github.com/suparena/texfigure/storagemodels"
)

// TestIntegration_PublishToDynamoDB saves a plot with a Manager that
// publishes to both a YAML manifest and a live DynamoDB table.
func TestIntegration_PublishToDynamoDB(t *testing.T) {
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}
	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	ctx := context.Background()
	doc := fmt.Sprintf("it-%d", time.Now().UnixNano())

	dynamo, err := ddb.NewDynamodbDataStore[storagemodels.FigureRecord](ctx,
		os.Getenv("AWS_ACCESS_KEY"), os.Getenv("AWS_SECRET_KEY"), os.Getenv("AWS_REGION"), table, doc)
	require.NoError(t, err)

	base := t.TempDir()
	manifest := filestore.New(filepath.Join(base, filestore.DefaultFileName), doc)

	m, err := texfigure.NewManager(nil, base,
		texfigure.WithDocument(doc),
		texfigure.WithRecordStore("yaml", manifest),
		texfigure.WithRecordStore("dynamodb", dynamo),
	)
	require.NoError(t, err)

	p := plot.New()
	p.Title.Text = "integration"
	fig, err := m.SaveFigure(ctx, "integration", p, texfigure.WithExt(".png"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dynamo.Delete(ctx, doc+"/integration") })

	remote, err := dynamo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remote, 1)
	require.Equal(t, fig.FileNames, remote[0].FileNames)

	local, err := manifest.List(ctx)
	require.NoError(t, err)
	require.Len(t, local, 1)
}
