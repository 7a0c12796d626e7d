/*
Package errors provides semantic error types for texfigure.

The package defines the failure modes of the figure manager with specific types
that can be checked using the standard errors.Is() function or the provided
helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("not found")
	    ErrAlreadyExists   = errors.New("already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrUnsupportedType = errors.New("unsupported type")
	    ErrCapacity        = errors.New("capacity exceeded")
	    ErrNoIndexMap      = errors.New("no index map found for type")
	)

Usage:

	fig, err := manager.GetFigure("velocity")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // the figure was never saved in this run
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("figure", "velocity")
	err := errors.NewUnsupportedTypeError("save function", "*main.Chart")
	err := errors.NewValidationError("key", "must not be empty")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
