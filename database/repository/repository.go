// Package repository holds the sentinel errors shared by all stores.
package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup by identity matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrNoMatch is returned when a conditional update's precondition
	// did not hold. Nothing was written.
	ErrNoMatch = errors.New("precondition not met")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// Translate maps driver errors onto the sentinels above.
func Translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
