package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for benchmark operations.
var (
	// ErrInvalidParameter indicates a construction parameter outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrDimensionMismatch indicates series that are not index-aligned with their grid.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between series and grid")

	// ErrUnknownScheme indicates a scheme name missing from the registry.
	ErrUnknownScheme = errors.New("dynamo: unknown integration scheme")
)

// ParameterError names the offending parameter of a rejected configuration.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(name string, value float64, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}
