package waitlist

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrStore              = errors.New("waitlist store failure")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// EmailAlreadyExistsError is reported by store implementations when the
// uniqueness constraint on the email rejects an insert.
type EmailAlreadyExistsError struct {
	Email Email
	// Cause is the message reported by the store, if any.
	Cause string
}

func (e *EmailAlreadyExistsError) Error() string {
	if e.Cause != "" {
		return e.Cause
	}
	return fmt.Sprintf("email '%s' is already on the waitlist", e.Email)
}

func (e *EmailAlreadyExistsError) Is(target error) bool {
	return target == ErrEmailAlreadyExists
}

// StoreError fails a whole signup. Cause is the store's message, carried
// verbatim and never interpreted.
type StoreError struct {
	Cause string
	err   error
}

func NewStoreError(err error) *StoreError {
	return &StoreError{Cause: err.Error(), err: err}
}

func (e *StoreError) Error() string {
	return "Database error: " + e.Cause
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.err
}
