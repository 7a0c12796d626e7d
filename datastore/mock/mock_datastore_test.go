/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/suparena/texfigure/datastore/mock"
	"github.com/suparena/texfigure/datastore/testmodels"
	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/storagemodels"
)

type TestEntity struct {
	ID   string
	Name string
}

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		entity := TestEntity{ID: "123", Name: "Test"}
		if err := mockStore.Put(ctx, entity); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.ID != "123" || retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		if err := mockStore.Delete(ctx, "123"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err = mockStore.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()

		putErr := errors.NewValidationError("name", "required")
		mockStore.WithPutError(putErr)

		err := mockStore.Put(ctx, TestEntity{ID: "123", Name: "Test"})
		if err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}
		if mockStore.Puts() != 1 {
			t.Fatalf("Expected failed put to be counted, got %d", mockStore.Puts())
		}

		deleteErr := errors.NewNotFoundError("entity", "123")
		mockStore.WithDeleteError(deleteErr)

		if err := mockStore.Delete(ctx, "123"); err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		for _, e := range []TestEntity{{ID: "c"}, {ID: "a"}, {ID: "b"}} {
			if err := mockStore.Put(ctx, e); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}
		// replacing keeps the original position
		if err := mockStore.Put(ctx, TestEntity{ID: "c", Name: "again"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		results, err := mockStore.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		got := []string{results[0].ID, results[1].ID, results[2].ID}
		want := []string{"c", "a", "b"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Expected order %v, got %v", want, got)
			}
		}
		if results[0].Name != "again" {
			t.Fatalf("Expected replaced entity, got %+v", results[0])
		}
	})

	t.Run("IDMethodKey", func(t *testing.T) {
		mockStore := mock.New[storagemodels.FigureRecord]()

		rec := testmodels.VelocityRecord()
		if err := mockStore.Put(ctx, rec); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if _, err := mockStore.GetOne(ctx, rec.ID()); err != nil {
			t.Fatalf("GetOne by ID() failed: %v", err)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()
		err := mockStore.Put(ctx, TestEntity{ID: "1"})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		_ = mockStore.Put(ctx, TestEntity{ID: "1", Name: "One"})
		_ = mockStore.Put(ctx, TestEntity{ID: "2", Name: "Two"})

		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}
		if len(mockStore.GetData()) != 2 {
			t.Fatalf("Expected 2 items in data")
		}

		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
	})
}
