package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")

	// ErrIngredientInUse rejects deleting an ingredient that cocktails still reference.
	ErrIngredientInUse = errors.New("ingredient is used by cocktails")
)

// ValidationError names the input field that broke a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a missing cocktail or ingredient.
// Lookups by name set Name instead of ID.
type NotFoundError struct {
	Entity string
	ID     uint
	Name   string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Name)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError wraps a storage failure with the operation that caused it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var notFound *NotFoundError
	var validation *ValidationError
	if errors.As(err, &notFound) || errors.As(err, &validation) || errors.Is(err, ErrIngredientInUse) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
