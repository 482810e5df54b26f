package optional

import (
	"fmt"
	"reflect"
)

// A Variant describes a specialization of Optional for one shape of value,
// such as "a bool" or "a pointer to a struct". Variants form a tree rooted at
// Any: a variant refines its parent, and a value is only accepted by a variant
// when every variant between it and Any accepts it too.
type Variant struct {
	name    string
	parent  *Variant
	accepts func(value any) bool
}

// Any is the base variant. It accepts every non-nil value and is the variant
// of optionals created without a more specific match.
var Any = &Variant{
	name:    "Optional",
	accepts: func(any) bool { return true },
}

// NewVariant creates a variant named name that refines parent. A variant with
// a nil parent is detached from Any and cannot be registered.
func NewVariant(name string, parent *Variant, accepts func(value any) bool) *Variant {
	return &Variant{name: name, parent: parent, accepts: accepts}
}

// InstanceOf creates a variant accepting exactly the values of type T,
// refining parent
func InstanceOf[T any](parent *Variant) *Variant {
	name := "Optional[" + reflect.TypeOf((*T)(nil)).Elem().String() + "]"
	return NewVariant(name, parent, func(value any) bool {
		_, ok := value.(T)
		return ok
	})
}

// Name returns the name the variant was created with
func (v *Variant) Name() string {
	return v.name
}

// Parent returns the variant that v refines, or nil for Any
func (v *Variant) Parent() *Variant {
	return v.parent
}

func (v *Variant) String() string {
	if v == nil {
		return "<nil>"
	}
	return v.name
}

// Is reports whether v is ancestor or one of its descendants
func (v *Variant) Is(ancestor *Variant) bool {
	for current := v; current != nil; current = current.parent {
		if current == ancestor {
			return true
		}
	}
	return false
}

// refines reports whether v is a proper descendant of ancestor
func (v *Variant) refines(ancestor *Variant) bool {
	return v != ancestor && v.Is(ancestor)
}

// Accepts reports whether value can be held by an optional of this variant.
// A nil variant accepts nothing.
func (v *Variant) Accepts(value any) bool {
	if v == nil || isNil(value) {
		return false
	}
	for current := v; current != nil && current != Any; current = current.parent {
		if current.accepts == nil || !current.accepts(value) {
			return false
		}
	}
	return true
}

// Empty returns an empty optional of this variant
func (v *Variant) Empty() *Optional[any] {
	return As[any](v).Empty()
}

// Of wraps value in an optional of this variant, or of its most specific
// registered refinement
func (v *Variant) Of(value any) (*Optional[any], error) {
	return As[any](v).Of(value)
}

// OfNullable is like Of, but a nil value gives an empty optional
func (v *Variant) OfNullable(value any) (*Optional[any], error) {
	return As[any](v).OfNullable(value)
}

// isNil tests if value is the absent-marker: a nil interface, or a nil value
// of a kind that can hold nil
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func describe(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
