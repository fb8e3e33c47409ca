package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCoin           = errors.New("coin must not be empty")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrInvalidDirection    = errors.New("direction must be buy or sell")
)

// ValidationError rejects a record before it reaches the store.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError reports a store that could not be opened, read or written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
