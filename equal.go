package optional

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// conformer is implemented by every *Optional[T], whatever T is
type conformer interface {
	contents() (value any, present bool, variant *Variant)
}

func (o *Optional[T]) contents() (any, bool, *Variant) {
	if o == nil {
		return nil, false, Any
	}
	return o.value, o.present, o.Variant()
}

// Equals reports whether other is equal to o. Other may be an optional of any
// type parameter, or a raw value, which is first wrapped by the variant of o
// (a value the variant rejects is never equal).
//
// Other is only comparable when its variant is the variant of o or refines
// it, so an optional of the base variant may equal a typed optional but two
// unrelated variants never do. Values are compared structurally, or by
// identity for pointers, maps, slices, channels and functions when strict is
// true. Functions nested in values are always compared by identity.
func (o *Optional[T]) Equals(other any, strict ...bool) bool {
	var c conformer
	switch other := other.(type) {
	case conformer:
		c = other
	default:
		wrapped, err := o.Variant().OfNullable(other)
		if err != nil {
			return false
		}
		c = wrapped
	}

	value, present, variant := o.contents()
	otherValue, otherPresent, otherVariant := c.contents()

	if !otherVariant.Is(variant) {
		return false
	}
	if !present || !otherPresent {
		return present == otherPresent
	}
	return sameValue(value, otherValue, len(strict) > 0 && strict[0])
}

var (
	exportAll = cmp.Exporter(func(reflect.Type) bool { return true })
	sameFunc  = cmp.FilterValues(func(a, b any) bool {
		return isFunc(a) && isFunc(b)
	}, cmp.Comparer(func(a, b any) bool {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}))
)

func isFunc(value any) bool {
	t := reflect.TypeOf(value)
	return t != nil && t.Kind() == reflect.Func
}

func sameValue(a, b any, strict bool) bool {
	if strict {
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		if ra.Type() != rb.Type() {
			return false
		}
		switch ra.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return ra.Pointer() == rb.Pointer()
		case reflect.Slice:
			return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
		}
	}
	return cmp.Equal(a, b, exportAll, sameFunc)
}
