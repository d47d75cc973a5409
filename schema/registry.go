package schema

import (
	"errors"
	"fmt"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
)

// Registry holds the known entity types in registration order.
// It implements cascade.Catalog.
type Registry struct {
	descriptors []*Descriptor
	byName      map[string]*Descriptor
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
	}
}

// Register adds descriptors to the registry. Names must be unique.
func (r *Registry) Register(ds ...*Descriptor) error {
	for _, d := range ds {
		if d == nil || d.name == "" {
			return errors.New("schema: descriptor without a name")
		}
		if _, ok := r.byName[d.name]; ok {
			return fmt.Errorf("schema: entity %q registered twice", d.name)
		}
		r.byName[d.name] = d
		r.descriptors = append(r.descriptors, d)
	}
	return nil
}

// MustRegister is like Register but panics on error. It is intended for
// package-level schema definitions.
func (r *Registry) MustRegister(ds ...*Descriptor) *Registry {
	if err := r.Register(ds...); err != nil {
		panic(err)
	}
	return r
}

// Lookup implements cascade.Catalog.
func (r *Registry) Lookup(name string) (cascade.Type, bool) {
	d, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return d, true
}

// Descriptor returns the descriptor of the named type.
func (r *Registry) Descriptor(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Descriptors returns all registered descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	return append([]*Descriptor(nil), r.descriptors...)
}

// Validate reports every relationship whose target is not registered.
// The resolver raises the same error lazily; Validate surfaces all of them
// up front.
func (r *Registry) Validate() error {
	var errs []error
	for _, d := range r.descriptors {
		for _, ref := range d.refs {
			if _, ok := r.byName[ref.Target]; !ok {
				errs = append(errs, veloxdb.NewUnsupportedReferenceError(d.name, ref.Field, ref.Target))
			}
		}
		for _, inv := range d.invs {
			if _, ok := r.byName[inv.Target]; !ok {
				errs = append(errs, veloxdb.NewUnsupportedReferenceError(d.name, inv.Name, inv.Target))
			}
		}
	}
	return errors.Join(errs...)
}

var _ cascade.Catalog = (*Registry)(nil)
