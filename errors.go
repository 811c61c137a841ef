package sdf

import (
	"errors"
	"fmt"

	"github.com/scigolib/sdf/internal/format"
)

// ErrNotSDF reports that a file is not a valid SDF file.
var ErrNotSDF = format.ErrNotSDF

// ErrUnknownVariable reports that a requested variable name does not
// exist in the file, for example in a drop list.
var ErrUnknownVariable = errors.New("unknown variable")

// ErrUnresolvedCoordinate reports that a variable axis could not be
// matched to any mesh axis. Dataset assembly logs and skips such
// variables; the sentinel surfaces when callers resolve directly.
var ErrUnresolvedCoordinate = errors.New("unresolved coordinate")

// UnresolvedCoordinateError describes which axis of which variable
// failed coordinate resolution. It unwraps to ErrUnresolvedCoordinate.
type UnresolvedCoordinateError struct {
	Variable string
	Label    string
	Axis     int
	Size     int
}

func (e *UnresolvedCoordinateError) Error() string {
	return fmt.Sprintf("unresolved coordinate: variable %q axis %d (label %q, %d points) matches no mesh axis",
		e.Variable, e.Axis, e.Label, e.Size)
}

func (e *UnresolvedCoordinateError) Unwrap() error {
	return ErrUnresolvedCoordinate
}
