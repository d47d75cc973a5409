package schema

import (
	"github.com/go-openapi/inflect"

	"github.com/syssam/veloxdb/cascade"
)

// IDType is the Go representation of a primary key.
type IDType string

// Supported ID types.
const (
	IDInt    IDType = "int"
	IDString IDType = "string"
	IDUUID   IDType = "uuid"
)

// DefaultDeletedAt is the deleted-at field used by SoftDelete("").
const DefaultDeletedAt = "deleted_at"

var rules = inflect.NewDefaultRuleset()

// TableName returns the default table of an entity type name,
// the snake-cased plural of the name ("OrderItem" -> "order_items").
func TableName(name string) string {
	return rules.Underscore(rules.Pluralize(name))
}

// Descriptor describes one entity type. It implements cascade.Type.
type Descriptor struct {
	name      string
	table     string
	idField   string
	idType    IDType
	fields    []string
	refs      []cascade.Reference
	invs      []cascade.Inverse
	deletedAt string
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// Entity returns the descriptor of the named entity type.
//
//	user := schema.Entity("User",
//	    schema.SoftDelete(""),
//	    schema.Fields("name", "email"),
//	    schema.Inverse("owner_of", "Project", "owner_id", cascade.Same),
//	)
func Entity(name string, opts ...Option) *Descriptor {
	d := &Descriptor{
		name:    name,
		table:   TableName(name),
		idField: "id",
		idType:  IDInt,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table overrides the default table name.
func Table(name string) Option {
	return func(d *Descriptor) {
		if name != "" {
			d.table = name
		}
	}
}

// ID sets the primary key field and its type.
func ID(field string, t IDType) Option {
	return func(d *Descriptor) {
		if field != "" {
			d.idField = field
		}
		if t != "" {
			d.idType = t
		}
	}
}

// Fields declares plain fields loaded with every row.
func Fields(names ...string) Option {
	return func(d *Descriptor) {
		d.fields = append(d.fields, names...)
	}
}

// Reference declares a field holding the ID of a target row.
func Reference(field, target string, p cascade.Policy) Option {
	return func(d *Descriptor) {
		d.refs = append(d.refs, cascade.Reference{Field: field, Target: target, Policy: p})
	}
}

// Inverse declares that target rows whose field holds this row's ID belong to it.
func Inverse(name, target, field string, p cascade.Policy) Option {
	return func(d *Descriptor) {
		d.invs = append(d.invs, cascade.Inverse{Name: name, Target: target, Field: field, Policy: p})
	}
}

// SoftDelete makes the type soft-deletable through the given field.
// An empty field selects DefaultDeletedAt.
func SoftDelete(field string) Option {
	return func(d *Descriptor) {
		if field == "" {
			field = DefaultDeletedAt
		}
		d.deletedAt = field
	}
}

// Name implements cascade.Type.
func (d *Descriptor) Name() string { return d.name }

// Table implements cascade.Type.
func (d *Descriptor) Table() string { return d.table }

// IDField implements cascade.Type.
func (d *Descriptor) IDField() string { return d.idField }

// IDType returns the type of the primary key.
func (d *Descriptor) IDType() IDType { return d.idType }

// References implements cascade.Type.
func (d *Descriptor) References() []cascade.Reference { return d.refs }

// Inverses implements cascade.Type.
func (d *Descriptor) Inverses() []cascade.Inverse { return d.invs }

// SoftDeletable implements cascade.Type.
func (d *Descriptor) SoftDeletable() bool { return d.deletedAt != "" }

// DeletedAtField implements cascade.Type.
func (d *Descriptor) DeletedAtField() string { return d.deletedAt }

// Columns returns every column loaded for a row: the ID, declared fields,
// reference fields and the deleted-at field, without duplicates.
func (d *Descriptor) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	add(d.idField)
	for _, f := range d.fields {
		add(f)
	}
	for _, r := range d.refs {
		add(r.Field)
	}
	add(d.deletedAt)
	return cols
}

var _ cascade.Type = (*Descriptor)(nil)
