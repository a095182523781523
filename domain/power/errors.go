package power

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the only failure mode the calculator has. Every
// validation error wraps it so callers can match with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError identifies which argument was rejected and why.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func newInvalidParameter(param string, value float64, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

// IsInvalidParameter reports whether err originated from query validation.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
