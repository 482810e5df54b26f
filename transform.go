package optional

import (
	"fmt"
	"strings"
)

// Filter returns an empty optional of the same variant when o holds a value
// that predicate rejects. Otherwise it returns o itself.
func (o *Optional[T]) Filter(predicate func(value T) bool) *Optional[T] {
	if o == nil {
		return Empty[T]()
	}
	if o.present && !predicate(o.value) {
		return emptyOf[T](o.Variant())
	}
	return o
}

// Map applies mapper to the value of o and wraps the result with OfNullable,
// so a nil result gives an empty optional and the variant of the result is
// resolved again from its value. An empty o gives an empty optional of the
// base variant.
func Map[T, U any](o *Optional[T], mapper func(value T) U) *Optional[U] {
	if o.IsEmpty() {
		return Empty[U]()
	}
	return OfNullable(mapper(o.value))
}

// FlatMap applies mapper to the value of o and returns its result as is.
// A mapper returning a nil optional is an error. An empty o gives an empty
// optional of the base variant.
func FlatMap[T, U any](o *Optional[T], mapper func(value T) *Optional[U]) (*Optional[U], error) {
	if o.IsEmpty() {
		return Empty[U](), nil
	}
	mapped := mapper(o.value)
	if mapped == nil {
		return nil, invalidArgument("mapper must return an optional, got nil")
	}
	return mapped, nil
}

// OrElse returns the value of o, or other when o is empty
func (o *Optional[T]) OrElse(other T) T {
	if o.IsEmpty() {
		return other
	}
	return o.value
}

// OrElseGet returns the value of o, or the result of supplier when o is
// empty. The supplied value must be one the variant of o accepts; the base
// variant accepts anything.
func (o *Optional[T]) OrElseGet(supplier func() T) (T, error) {
	if !o.IsEmpty() {
		return o.value, nil
	}
	other := supplier()
	if v := o.Variant(); v != Any && !v.Accepts(other) {
		var zero T
		return zero, invalidArgument("%s does not accept supplied %s", v.name, describe(other))
	}
	return other, nil
}

// OrElseThrow returns the value of o. When o is empty it returns an error
// built from exception, which is one of:
//
//   - nil, for a *NoSuchElementError carrying the message
//   - an error, returned as is, or wrapped with the message when one is given
//   - a func(message string) error or func() error supplying the error
//
// Any other exception, or a supplier returning nil, gives ErrInvalidArgument.
func (o *Optional[T]) OrElseThrow(exception any, message ...string) (T, error) {
	if !o.IsEmpty() {
		return o.value, nil
	}

	var zero T
	msg := strings.Join(message, " ")

	var err error
	switch e := exception.(type) {
	case nil:
		return zero, &NoSuchElementError{Message: msg}
	case error:
		if msg == "" {
			return zero, e
		}
		return zero, fmt.Errorf("%s: %w", msg, e)
	case func(string) error:
		err = e(msg)
	case func() error:
		err = e()
	default:
		return zero, invalidArgument("exception must be an error or an error supplier, got %T", exception)
	}

	if err == nil {
		return zero, invalidArgument("exception supplier must return an error")
	}
	return zero, err
}
