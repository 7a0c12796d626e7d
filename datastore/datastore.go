/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// DataStore persists records of type T under string keys.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Delete(ctx context.Context, key string) error

	// List returns every stored record in a store-defined stable order.
	List(ctx context.Context) ([]T, error)
}
