package rentcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification, use errors.Is.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidField        = errors.New("invalid field")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrDivisionSingularity = errors.New("division singularity")
)

// MissingFieldError reports a required input (price or weekly rent) that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// FieldError reports an input value outside of its domain.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidField, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// ConfigError reports an assumption, or a per-property financing override,
// that makes the computation meaningless.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// SingularityError reports metrics whose divisor is zero. The record that
// comes with it is complete, the listed metrics hold ±Inf or NaN.
type SingularityError struct {
	Metrics []string // output column names
	Causes  []string // e.g. "equity is zero"
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%v: %s undefined (%s)", ErrDivisionSingularity, strings.Join(e.Metrics, ", "), strings.Join(e.Causes, ", "))
}

func (e *SingularityError) Unwrap() error { return ErrDivisionSingularity }

// IsSingular reports whether err only flags undefined metrics, in which case
// the scored record is still usable.
func IsSingular(err error) bool {
	var s *SingularityError
	return errors.As(err, &s)
}
