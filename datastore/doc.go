/*
Package datastore defines where texfigure publishes the records of saved figures.

The main interface is DataStore[T], a small keyed store:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Delete(ctx context.Context, key string) error
	    List(ctx context.Context) ([]T, error)
	}

Implementations:
  - filestore: a YAML manifest next to the figures, read back by the texfigure CLI
  - ddb: DynamoDB single-table store for sharing a figure index between builds
  - mock: in-memory implementation with error injection for testing

GetOne returns an error matching errors.ErrNotFound for unknown keys in every
implementation.
*/
package datastore
