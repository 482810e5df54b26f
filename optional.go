// Package optional implements Optional, a container holding zero or one
// non-nil value, modeled on java.util.Optional.
//
// Every optional belongs to a Variant describing the shape of value it may
// hold. Optionals built by the package level constructors are resolved
// through a Registry, which picks the most specific registered variant for
// the value, so Of("a") holds a String variant and Of(time.Now()) a Time
// variant. Typed variants are bound to a static Go type with As.
package optional

import (
	"fmt"
	"sync/atomic"
)

// Optional holds either nothing or a single non-nil value. Optionals are
// immutable and safe to share between goroutines; a nil *Optional behaves as
// an empty optional of the base variant.
type Optional[T any] struct {
	value   T
	present bool
	variant *Variant

	// Set by IsPresent, so Get can notice reads that skipped the check. It
	// plays no part in equality.
	observed atomic.Bool
}

func newOptional[T any](variant *Variant, value T) *Optional[T] {
	return &Optional[T]{value: value, present: true, variant: variant}
}

func emptyOf[T any](variant *Variant) *Optional[T] {
	return &Optional[T]{variant: variant}
}

// Empty returns an empty optional of the base variant
func Empty[T any]() *Optional[T] {
	return emptyOf[T](Any)
}

// Of returns an optional holding value, resolved to the most specific
// variant in the Default registry. Nil values are rejected with
// ErrInvalidArgument.
func Of[T any](value T) (*Optional[T], error) {
	if isNil(value) {
		return nil, invalidArgument("value must not be nil")
	}
	return OfNullableIn(Default, value), nil
}

// OfNullable is like Of, but returns an empty optional for a nil value.
// Values no registered variant accepts are held by the base variant.
func OfNullable[T any](value T) *Optional[T] {
	return OfNullableIn(Default, value)
}

// OfNullableIn is OfNullable, resolving the variant in registry r
func OfNullableIn[T any](r *Registry, value T) *Optional[T] {
	if isNil(value) {
		return Empty[T]()
	}
	o, err := Resolve(r, value, Any)
	if err != nil {
		r.noticeFallback(value)
		return newOptional(Any, value)
	}
	return o
}

// OfFalsable adapts APIs that return false for a missing value: false gives
// an empty optional, anything else is passed to Of
func OfFalsable[T any](value T) (*Optional[T], error) {
	if b, ok := any(value).(bool); ok && !b {
		return Empty[T](), nil
	}
	return Of(value)
}

// OfSingle returns an empty optional for no values, and an optional of the
// value when there is exactly one. More values are rejected.
func OfSingle[T any](values []T) (*Optional[T], error) {
	switch len(values) {
	case 0:
		return Empty[T](), nil
	case 1:
		return Of(values[0])
	}
	return nil, invalidArgument("expected at most one value, got %d", len(values))
}

// Resolve returns an optional holding value, of the most recently registered
// variant in r that refines within and accepts value. It returns a
// *ValueError if there is no such variant.
func Resolve[T any](r *Registry, value T, within *Variant) (*Optional[T], error) {
	v, err := r.resolve(value, within)
	if err != nil {
		return nil, err
	}
	return newOptional(v, value), nil
}

// Variant returns the variant of o
func (o *Optional[T]) Variant() *Variant {
	if o == nil || o.variant == nil {
		return Any
	}
	return o.variant
}

// IsPresent reports whether o holds a value, and records that the presence
// of o was checked
func (o *Optional[T]) IsPresent() bool {
	if o == nil {
		return false
	}
	o.observed.Store(true)
	return o.present
}

// IsEmpty reports whether o holds no value. Unlike IsPresent, it does not
// count as a presence check for Get.
func (o *Optional[T]) IsEmpty() bool {
	return o == nil || !o.present
}

// Get returns the value of o, or a *NoSuchElementError when o is empty.
// Calling Get before IsPresent emits a notice.
func (o *Optional[T]) Get() (T, error) {
	if o == nil || !o.observed.Load() {
		notice("Call IsPresent() before accessing the value")
	}
	return o.OrElseThrow(nil)
}

// IfPresent calls consumer with the value of o when there is one, otherwise
// it calls orElse, if given
func (o *Optional[T]) IfPresent(consumer func(value T), orElse ...func()) {
	if !o.IsEmpty() {
		consumer(o.value)
		return
	}
	for _, f := range orElse {
		f()
	}
}

// ToNullable returns the value of o, or the zero value of T when o is empty
func (o *Optional[T]) ToNullable() T {
	if o.IsEmpty() {
		var zero T
		return zero
	}
	return o.value
}

func (o *Optional[T]) String() string {
	if o.IsEmpty() {
		return o.Variant().name + ".empty"
	}
	return fmt.Sprintf("%s[%v]", o.Variant().name, o.value)
}
