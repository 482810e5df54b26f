package optional

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

type dataObject struct {
	value string
}

type differentObject struct {
	value string
}

// Refines Object without being registered
var optionalDataObject = InstanceOf[*dataObject](Object)

func must[T any](o *Optional[T], err error) *Optional[T] {
	if err != nil {
		panic(err)
	}
	return o
}

type namedValue struct {
	name  string
	value any
}

func TestEquals(t *testing.T) {
	object := &dataObject{value: value}
	dataObjects := As[*dataObject](optionalDataObject)

	set := []namedValue{
		// non-optional
		{"null", nil},
		{"value", value},
		{"other value", other},
		{"same object", object},
		{"equal object", &dataObject{value: value}},
		{"other object", &dataObject{value: other}},
		{"different object", &differentObject{value: value}},
		// optional
		{"optional (empty)", Empty[any]()},
		{"optional (value)", must(Of[any](value))},
		{"optional (other value)", must(Of[any](other))},
		{"optional (same object)", must(Of[any](object))},
		{"optional (equal object)", must(Of[any](&dataObject{value: value}))},
		{"optional (other object)", must(Of[any](&dataObject{value: other}))},
		{"optional (different object)", must(Of[any](&differentObject{value: value}))},
		// registered typed optional
		{"registered typed optional (empty)", Strings.Empty()},
		{"registered typed optional (value)", must(Strings.Of(value))},
		{"registered typed optional (other value)", must(Strings.Of(other))},
		// unregistered typed optional
		{"unregistered typed optional (empty)", dataObjects.Empty()},
		{"unregistered typed optional (same object)", must(dataObjects.Of(object))},
		{"unregistered typed optional (equal object)", must(dataObjects.Of(&dataObject{value: value}))},
		{"unregistered typed optional (other object)", must(dataObjects.Of(&dataObject{value: other}))},
	}

	tests := []struct {
		name     string
		optional interface{ Equals(any, ...bool) bool }
		strict   []bool
		equals   []string
	}{
		{
			name:     "optional (empty)",
			optional: Empty[any](),
			equals:   []string{"null", "optional (empty)", "registered typed optional (empty)", "unregistered typed optional (empty)"},
		},
		{
			name:     "optional (value)",
			optional: must(Of[any](value)),
			equals:   []string{"value", "optional (value)", "registered typed optional (value)"},
		},
		{
			name:     "optional (object)",
			optional: must(Of[any](object)),
			strict:   []bool{false},
			equals:   []string{"same object", "equal object", "optional (same object)", "optional (equal object)", "unregistered typed optional (same object)", "unregistered typed optional (equal object)"},
		},
		{
			name:     "optional (object)",
			optional: must(Of[any](object)),
			strict:   []bool{true},
			equals:   []string{"same object", "optional (same object)", "unregistered typed optional (same object)"},
		},
		{
			name:     "registered typed optional (empty)",
			optional: Strings.Empty(),
			equals:   []string{"null", "registered typed optional (empty)"},
		},
		{
			name:     "registered typed optional (value)",
			optional: must(Strings.Of(value)),
			equals:   []string{"value", "optional (value)", "registered typed optional (value)"},
		},
		{
			name:     "unregistered typed optional (empty)",
			optional: dataObjects.Empty(),
			equals:   []string{"null", "unregistered typed optional (empty)"},
		},
		{
			name:     "unregistered typed optional (object)",
			optional: must(dataObjects.Of(object)),
			strict:   []bool{false},
			equals:   []string{"same object", "equal object", "unregistered typed optional (same object)", "unregistered typed optional (equal object)"},
		},
		{
			name:     "unregistered typed optional (object)",
			optional: must(dataObjects.Of(object)),
			strict:   []bool{true},
			equals:   []string{"same object", "unregistered typed optional (same object)"},
		},
	}

	for _, tt := range tests {
		for _, candidate := range set {
			expected := slices.Contains(tt.equals, candidate.name)
			name := fmt.Sprintf("%s equals %s (strict %v)", tt.name, candidate.name, tt.strict)
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, expected, tt.optional.Equals(candidate.value, tt.strict...))
			})
		}
	}
}

func TestEqualsAcrossTypeParameters(t *testing.T) {
	typed := must(Strings.Of(value))
	untyped := must(Of[any](value))

	assert.True(t, typed.Equals(untyped))
	assert.True(t, untyped.Equals(typed))
}

func TestEqualsUnrelatedVariants(t *testing.T) {
	name := NewVariant("OptionalName", Any, kindIs(reflect.String))
	names := As[string](name)

	a := must(names.Of(value))
	b := must(Strings.Of(value))

	assert.False(t, a.Equals(b))
	assert.False(t, b.Equals(a))
	assert.False(t, Strings.Empty().Equals(Bools.Empty()))
	assert.True(t, Strings.Empty().Equals(Strings.Empty()))
}

func TestEqualsStrictComparesValuesOfValueTypes(t *testing.T) {
	o := must(Of(dataObject{value: value}))
	require.Equal(t, Object, o.Variant())

	assert.True(t, o.Equals(dataObject{value: value}, true))
	assert.False(t, o.Equals(dataObject{value: other}, true))
}

func TestEqualsStrictSlices(t *testing.T) {
	values := []string{value, other}
	o := must(Of(values))

	assert.True(t, o.Equals(values, true))
	assert.False(t, o.Equals([]string{value, other}, true))
	assert.True(t, o.Equals([]string{value, other}))
	assert.False(t, o.Equals(values[:1], true))
}

type withCallback struct {
	name     string
	callback func() string
}

func greet() string { return value }

func shout() string { return other }

func TestEqualsComparesNestedFuncsByIdentity(t *testing.T) {
	s := withCallback{name: value, callback: greet}
	o := OfNullable(s)
	require.Equal(t, Object, o.Variant())

	assert.True(t, o.Equals(s))
	assert.True(t, o.Equals(s, true))
	assert.True(t, o.Equals(withCallback{name: value, callback: greet}))
	assert.False(t, o.Equals(withCallback{name: value, callback: shout}))
	assert.False(t, o.Equals(withCallback{name: value}))
	assert.False(t, o.Equals(withCallback{name: other, callback: greet}))
}
