// Package utils provides shared helpers for the SDF library.
package utils

import "fmt"

// SDFError is a contextual error raised while parsing an SDF file.
type SDFError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *SDFError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &SDFError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *SDFError) Unwrap() error {
	return e.Cause
}
