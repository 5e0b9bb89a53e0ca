// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel wrapped by NotFoundError.
	ErrNotFound = errors.New("alias not found")
	// ErrArity is the sentinel wrapped by ArityError.
	ErrArity = errors.New("not enough alias arguments")
	// ErrFormat is the sentinel wrapped by FormatError.
	ErrFormat = errors.New("invalid alias document")
	// ErrNilAction is returned by Register when the action is nil.
	ErrNilAction = errors.New("alias action must not be nil")
)

type (
	// NotFoundError is returned when an alias name is not registered, or when
	// an alias document does not exist. Exactly one of Name and Path is set.
	NotFoundError struct {
		Name string
		Path string
	}

	// ArityError is returned by Run when fewer arguments than the alias
	// declares survive the pre-hooks.
	ArityError struct {
		Name     string
		Expected int
		Got      int
	}

	// FormatError is returned when an alias document cannot be read as a mapping.
	FormatError struct {
		Path string
		// Kind is the kind of the top-level value when it parsed but was not a mapping.
		Kind string
		// Cause is the parse error, if any.
		Cause error
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("Alias config file '%s' not found.", e.Path)
	}
	return fmt.Sprintf("Alias '%s' not defined.", e.Name)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("Alias '%s' expects at least %d arguments.", e.Name, e.Expected)
}

// Unwrap returns ErrArity for errors.Is() compatibility.
func (e *ArityError) Unwrap() error { return ErrArity }

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("Alias config file '%s' is invalid: %v", e.Path, e.Cause)
	case e.Kind != "":
		return fmt.Sprintf("Alias config file '%s' must contain a mapping, got %s.", e.Path, e.Kind)
	default:
		return fmt.Sprintf("Alias config file '%s' must contain a mapping.", e.Path)
	}
}

// Unwrap returns both ErrFormat and the underlying cause, so errors.Is matches
// the sentinel and errors.As can still reach a parse error.
func (e *FormatError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Cause}
}
