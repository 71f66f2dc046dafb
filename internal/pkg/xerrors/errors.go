package xerrors

import (
	"errors"
	"fmt"
)

// Error categories. Domain packages wrap one of these so the HTTP edge can
// map any domain error to a status code with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrExhausted  = errors.New("nothing available")
	ErrTransient  = errors.New("temporary store failure")
)

// New returns a domain error that matches category with errors.Is.
func New(category error, msg string) error {
	return fmt.Errorf("%w: %s", category, msg)
}

// Transient marks err as retryable while keeping the driver error in the chain.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

type transientError struct{ err error }

func (e *transientError) Error() string { return ErrTransient.Error() + ": " + e.err.Error() }

func (e *transientError) Unwrap() []error { return []error{ErrTransient, e.err} }
