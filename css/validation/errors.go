package validation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValue       = errors.New("invalid or unsupported values for a known CSS property")
	ErrValueCountMismatch = errors.New("wrong number of values")
	ErrInvalidIdent       = errors.New("invalid identifier")
	ErrNegativeValue      = errors.New("negative values are not allowed")
	ErrOutOfRange         = errors.New("number out of range")
	ErrWrongCategory      = errors.New("wrong value type")
	ErrInheritNotAllowed  = errors.New("inherit is not allowed here")
	ErrUnknownProperty    = errors.New("unknown property")
)

// ValidationError is returned for a declaration rejected by validation.
// Err is one of the sentinel errors of this package.
type ValidationError struct {
	Property string
	Err      error
	Detail   string
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Property == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Property, msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// withProperty sets the property of `err`, wrapping it in
// a ValidationError if needed.
func withProperty(err error, property string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Property == "" {
			out := *ve
			out.Property = property
			return &out
		}
		return err
	}
	return &ValidationError{Property: property, Err: ErrInvalidValue, Detail: err.Error()}
}
