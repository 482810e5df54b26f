package optional

// Typed binds a variant to the static type of the values it holds, so the
// optionals it builds are *Optional[T]. The zero value is bound to Any and
// looks refinements up in Default.
type Typed[T any] struct {
	variant  *Variant
	registry *Registry
}

// As binds variant to T. Refinements of variant are looked up in the Default
// registry.
func As[T any](variant *Variant) Typed[T] {
	return Typed[T]{variant: variant, registry: Default}
}

// In returns a copy of t looking refinements up in registry r
func (t Typed[T]) In(r *Registry) Typed[T] {
	t.registry = r
	return t
}

// Variant returns the variant t is bound to
func (t Typed[T]) Variant() *Variant {
	if t.variant == nil {
		return Any
	}
	return t.variant
}

func (t Typed[T]) lookup() *Registry {
	if t.registry == nil {
		return Default
	}
	return t.registry
}

// Empty returns an empty optional of the variant
func (t Typed[T]) Empty() *Optional[T] {
	return emptyOf[T](t.Variant())
}

// Of returns an optional holding value, of the most specific registered
// refinement of the variant that accepts it, or of the variant itself.
// A nil value, or one the variant rejects, gives ErrInvalidArgument.
func (t Typed[T]) Of(value T) (*Optional[T], error) {
	if isNil(value) {
		return nil, invalidArgument("value must not be nil")
	}
	return t.OfNullable(value)
}

// OfNullable is like Of, but returns an empty optional for a nil value
func (t Typed[T]) OfNullable(value T) (*Optional[T], error) {
	if isNil(value) {
		return t.Empty(), nil
	}
	variant := t.Variant()
	if variant == Any {
		return OfNullableIn(t.lookup(), value), nil
	}
	if o, err := Resolve(t.lookup(), value, variant); err == nil {
		return o, nil
	}
	if !variant.Accepts(value) {
		return nil, invalidArgument("%s does not accept %s", variant.name, describe(value))
	}
	return newOptional(variant, value), nil
}

// OfFalsable returns an empty optional for false, and passes anything else
// to Of
func (t Typed[T]) OfFalsable(value T) (*Optional[T], error) {
	if b, ok := any(value).(bool); ok && !b {
		return t.Empty(), nil
	}
	return t.Of(value)
}
