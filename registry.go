package optional

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// A Registry is an ordered, append-only list of variants used to pick the
// most specific variant for a value. Variants registered later take priority,
// so refinements must be registered after the variants they refine.
//
// Registration is serialized and publishes a new snapshot; resolution reads
// the current snapshot without locking. The zero value is an empty registry.
type Registry struct {
	mu       sync.Mutex
	variants atomic.Pointer[[]*Variant]

	// Dynamic types that already fell back to Any, to only notice them once
	unresolved sync.Map
}

// Default is the registry used by the package level constructors, seeded
// with the built-in variants
var Default = mustRegistry(Builtins()...)

// NewRegistry creates a registry holding variants, in order
func NewRegistry(variants ...*Variant) (*Registry, error) {
	r := &Registry{}
	for _, v := range variants {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func mustRegistry(variants ...*Variant) *Registry {
	r, err := NewRegistry(variants...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register appends v to the registry. Existing entries are never removed or
// reordered.
func (r *Registry) Register(v *Variant) error {
	switch {
	case v == nil:
		return &RegistrationError{Reason: "variant is nil"}
	case v == Any:
		return &RegistrationError{Variant: v, Reason: "the base variant cannot be registered"}
	case v.accepts == nil:
		return &RegistrationError{Variant: v, Reason: "variant has no predicate"}
	case !v.Is(Any):
		return &RegistrationError{Variant: v, Reason: "variant does not refine " + Any.name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(slices.Clone(r.snapshot()), v)
	r.variants.Store(&next)

	log.WithFields(log.Fields{
		"variant": v.name,
		"parent":  v.parent.name,
	}).Debug("Registered variant")
	return nil
}

// Register appends v to the Default registry
func Register(v *Variant) error {
	return Default.Register(v)
}

// Variants returns the registered variants in registration order
func (r *Registry) Variants() []*Variant {
	return slices.Clone(r.snapshot())
}

func (r *Registry) snapshot() []*Variant {
	if variants := r.variants.Load(); variants != nil {
		return *variants
	}
	return nil
}

// resolve finds the most recently registered variant that refines within and
// accepts value
func (r *Registry) resolve(value any, within *Variant) (*Variant, error) {
	variants := r.snapshot()
	for i := len(variants) - 1; i >= 0; i-- {
		v := variants[i]
		// Skipping within itself keeps a variant's own constructor from
		// recursing back into it
		if !v.refines(within) {
			continue
		}
		if v.Accepts(value) {
			return v, nil
		}
	}
	return nil, &ValueError{Value: value}
}

// noticeFallback reports, once per dynamic type, a value that only the base
// variant accepts
func (r *Registry) noticeFallback(value any) {
	if _, seen := r.unresolved.LoadOrStore(reflect.TypeOf(value), struct{}{}); seen {
		return
	}
	notice(fmt.Sprintf("%s does not check the type of value %s", Any.name, describe(value)))
}
