// Package errors holds errors shared by every layer of the service.
package errors

import "fmt"

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}

// UnsupportedBackendError is returned when configuration names an adapter
// implementation the service does not ship.
type UnsupportedBackendError struct {
	Kind string
	Name string
}

func NewUnsupportedBackendError(kind, name string) *UnsupportedBackendError {
	return &UnsupportedBackendError{Kind: kind, Name: name}
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported %s backend '%s'", e.Kind, e.Name)
}
