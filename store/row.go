package store

import (
	"fmt"

	"github.com/syssam/veloxdb/cascade"
	"github.com/syssam/veloxdb/schema"
)

// Row is a loaded row of a registered entity type.
type Row struct {
	desc   *schema.Descriptor
	fields map[string]any
}

// NewRow returns a row of d holding fields. It is mostly useful when the
// caller already knows the ID and does not need to load the row.
func NewRow(d *schema.Descriptor, fields map[string]any) *Row {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Row{desc: d, fields: fields}
}

// Type implements cascade.Entity.
func (r *Row) Type() cascade.Type { return r.desc }

// Descriptor returns the descriptor of the row's type.
func (r *Row) Descriptor() *schema.Descriptor { return r.desc }

// ID implements cascade.Entity.
func (r *Row) ID() any { return r.fields[r.desc.IDField()] }

// Fields implements cascade.Entity.
func (r *Row) Fields() map[string]any { return r.fields }

// Value returns the value of the named field.
func (r *Row) Value(field string) any { return r.fields[field] }

// Deleted reports whether the row is soft-deleted.
func (r *Row) Deleted() bool {
	return r.desc.SoftDeletable() && r.fields[r.desc.DeletedAtField()] != nil
}

// ApplyFields implements cascade.Entity.
func (r *Row) ApplyFields(m map[string]any) {
	for k, v := range m {
		r.fields[k] = v
	}
}

// String implements fmt.Stringer.
func (r *Row) String() string {
	return fmt.Sprintf("%s(%v)", r.desc.Name(), r.ID())
}

// normalize converts the ID and the reference fields of m to their
// canonical ID values so rows can be compared and excluded by ID.
func (c *Client) normalize(d *schema.Descriptor, m map[string]any) error {
	id, err := schema.NormalizeID(d.IDType(), m[d.IDField()])
	if err != nil {
		return fmt.Errorf("store: %s.%s: %w", d.Name(), d.IDField(), err)
	}
	m[d.IDField()] = id
	for _, ref := range d.References() {
		target, ok := c.registry.Descriptor(ref.Target)
		if !ok || m[ref.Field] == nil {
			continue
		}
		v, err := schema.NormalizeID(target.IDType(), m[ref.Field])
		if err != nil {
			return fmt.Errorf("store: %s.%s: %w", d.Name(), ref.Field, err)
		}
		m[ref.Field] = v
	}
	return nil
}

var _ cascade.Entity = (*Row)(nil)
