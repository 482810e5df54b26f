package optional

import (
	"io"
	"reflect"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Built-in variants. Record, Time and Stream refine Dict, Object and Resource.
var (
	Bool   = NewVariant("OptionalBool", Any, kindIs(reflect.Bool))
	Int    = NewVariant("OptionalInt", Any, kindIs(reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr))
	Float  = NewVariant("OptionalFloat", Any, kindIs(reflect.Float32, reflect.Float64))
	String = NewVariant("OptionalString", Any, kindIs(reflect.String))
	Slice  = NewVariant("OptionalSlice", Any, kindIs(reflect.Slice, reflect.Array))
	Dict   = NewVariant("OptionalDict", Any, kindIs(reflect.Map))
	Record = NewVariant("OptionalRecord", Dict, func(value any) bool {
		_, ok := value.(map[string]any)
		return ok
	})

	// Object accepts structs, and non-nil pointers to structs
	Object = NewVariant("OptionalObject", Any, func(value any) bool {
		t := reflect.TypeOf(value)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return t.Kind() == reflect.Struct
	})
	Time = NewVariant("OptionalTime", Object, func(value any) bool {
		switch value.(type) {
		case time.Time, *time.Time:
			return true
		}
		return false
	})

	// Resource accepts handles that must be closed, and Stream those of them
	// that can also be read or written
	Resource = NewVariant("OptionalResource", Any, func(value any) bool {
		_, ok := value.(io.Closer)
		return ok
	})
	Stream = NewVariant("OptionalStream", Resource, func(value any) bool {
		switch value.(type) {
		case io.Reader, io.Writer:
			return true
		}
		return false
	})
)

// Builtins returns the built-in variants in the order they are registered in
// Default. Every refinement comes after the variant it refines.
func Builtins() []*Variant {
	return []*Variant{
		Slice,
		Bool,
		Float,
		Int,
		Dict,
		Record,
		Object,
		Time,
		Resource,
		Stream,
		String,
	}
}

var (
	Bools   = As[bool](Bool)
	Strings = As[string](String)
	Records = As[map[string]any](Record)
	Times   = As[time.Time](Time)
)

// Ints returns the Int variant bound to an integer type
func Ints[T constraints.Integer]() Typed[T] {
	return As[T](Int)
}

// Floats returns the Float variant bound to a floating point type
func Floats[T constraints.Float]() Typed[T] {
	return As[T](Float)
}

// Slices returns the Slice variant bound to a slice type
func Slices[S ~[]E, E any]() Typed[S] {
	return As[S](Slice)
}

// Maps returns the Dict variant bound to a map type
func Maps[M ~map[K]V, K comparable, V any]() Typed[M] {
	return As[M](Dict)
}

func kindIs(kinds ...reflect.Kind) func(any) bool {
	return func(value any) bool {
		return slices.Contains(kinds, reflect.TypeOf(value).Kind())
	}
}
