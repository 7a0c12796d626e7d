/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a figure, chapter or record key is not registered
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering a name that is already taken
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType is returned when no save function or include renderer matches
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCapacity is returned when a fixed-size container is full
	ErrCapacity = errors.New("capacity exceeded")

	// ErrNoIndexMap is returned when no index map is found for a record type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// NotFoundError represents a lookup of an unregistered key
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents a duplicate registration
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnsupportedTypeError is returned when a value has no registered handler.
// Kind names the lookup table ("save function", "include"), Type the
// offending Go type or file extension.
type UnsupportedTypeError struct {
	Kind string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no %s registered for %s", e.Kind, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// CapacityError represents an append to a full container
type CapacityError struct {
	Container string
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s is full (capacity %d)", e.Container, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError
func NewUnsupportedTypeError(kind, typeName string) error {
	return &UnsupportedTypeError{Kind: kind, Type: typeName}
}

// NewCapacityError creates a new CapacityError
func NewCapacityError(container string, capacity int) error {
	return &CapacityError{Container: container, Capacity: capacity}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsCapacity checks if an error is a capacity error
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}
