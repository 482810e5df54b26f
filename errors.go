package optional

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a caller passes a value that an
	// operation cannot accept, such as nil to Of
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSuchElement is returned when the value of an empty optional is read
	ErrNoSuchElement = errors.New("no such element")
	// ErrCouldNotFindTypedOptionalForValue is returned by a registry when no
	// registered variant accepts a value
	ErrCouldNotFindTypedOptionalForValue = errors.New("could not find typed optional for value")
	// ErrCouldNotRegisterNonOptional is returned when registering a variant
	// that does not refine Any
	ErrCouldNotRegisterNonOptional = errors.New("could not register non-optional")
)

// NoSuchElementError is returned by Get and OrElseThrow on an empty optional
type NoSuchElementError struct {
	Message string
}

func (e *NoSuchElementError) Error() string {
	if e.Message == "" {
		return ErrNoSuchElement.Error()
	}
	return ErrNoSuchElement.Error() + ": " + e.Message
}

func (e *NoSuchElementError) Is(target error) bool {
	return target == ErrNoSuchElement
}

// ValueError reports a value that no registered variant accepts
type ValueError struct {
	Value any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCouldNotFindTypedOptionalForValue, describe(e.Value))
}

func (e *ValueError) Unwrap() error {
	return ErrCouldNotFindTypedOptionalForValue
}

// RegistrationError reports a variant that a registry refused
type RegistrationError struct {
	Variant *Variant
	Reason  string
}

func (e *RegistrationError) Error() string {
	name := "<nil>"
	if e.Variant != nil {
		name = e.Variant.name
	}
	return fmt.Sprintf("%v %s: %s", ErrCouldNotRegisterNonOptional, name, e.Reason)
}

func (e *RegistrationError) Unwrap() error {
	return ErrCouldNotRegisterNonOptional
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
