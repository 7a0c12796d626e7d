/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/suparena/texfigure/datastore/mock"
	"github.com/suparena/texfigure/datastore/testmodels"
	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/storagemodels"
)

func TestStoreSet(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		set := NewStoreSet[storagemodels.FigureRecord]()

		// Register datastore
		err := set.Register("memory", mock.New[storagemodels.FigureRecord]())
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		// Get datastore
		retrieved, err := set.Get("memory")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if retrieved == nil {
			t.Fatal("Retrieved store is nil")
		}

		// List datastores
		names := set.Names()
		if len(names) != 1 || names[0] != "memory" {
			t.Fatalf("Expected [memory], got %v", names)
		}

		// Remove datastore
		if err := set.Remove("memory"); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}

		// Verify removal
		_, err = set.Get("memory")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found after removal, got %v", err)
		}
		if err := set.Remove("memory"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found on second removal, got %v", err)
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		set := NewStoreSet[storagemodels.FigureRecord]()

		if err := set.Register("memory", mock.New[storagemodels.FigureRecord]()); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		err := set.Register("memory", mock.New[storagemodels.FigureRecord]())
		if !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected duplicate registration error, got %v", err)
		}
	})

	t.Run("NilStore", func(t *testing.T) {
		set := NewStoreSet[storagemodels.FigureRecord]()
		if err := set.Register("nil", nil); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})

	t.Run("PutAllReachesEveryStore", func(t *testing.T) {
		ctx := context.Background()
		set := NewStoreSet[storagemodels.FigureRecord]()

		boom := stderrors.New("write refused")
		first := mock.New[storagemodels.FigureRecord]().WithPutError(boom)
		second := mock.New[storagemodels.FigureRecord]()
		_ = set.Register("first", first)
		_ = set.Register("second", second)

		err := set.PutAll(ctx, testmodels.VelocityRecord())
		if !stderrors.Is(err, boom) {
			t.Fatalf("Expected joined write error, got %v", err)
		}
		if second.Count() != 1 {
			t.Fatalf("Expected second store to receive the record, got %d", second.Count())
		}
		if first.Puts() != 1 {
			t.Fatalf("Expected one attempt on the failing store, got %d", first.Puts())
		}
	})

	t.Run("RegistrationOrder", func(t *testing.T) {
		set := NewStoreSet[storagemodels.FigureRecord]()
		for _, name := range []string{"yaml", "dynamodb", "memory"} {
			_ = set.Register(name, mock.New[storagemodels.FigureRecord]())
		}
		_ = set.Remove("dynamodb")

		names := set.Names()
		if len(names) != 2 || names[0] != "yaml" || names[1] != "memory" || set.Len() != 2 {
			t.Fatalf("Expected [yaml memory], got %v", names)
		}
	})
}
