package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the id does not resolve to a row.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken means another entity already uses the name,
	// compared case-insensitively.
	ErrNameTaken = errors.New("name already in use")

	// ErrInvalidCategory means a product's category reference does not
	// resolve to an existing category.
	ErrInvalidCategory = errors.New("category does not exist")
)

// ValidationError reports a caller-supplied field violating a declared
// constraint (required, length, range).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// CategoryInUseError blocks hard-deleting a category while products still
// reference it. The count is surfaced to the caller.
type CategoryInUseError struct {
	CategoryID   uint
	ProductCount int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %d is referenced by %d product(s)", e.CategoryID, e.ProductCount)
}
