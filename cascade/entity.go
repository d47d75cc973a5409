package cascade

import (
	"context"
	"time"
)

// Type is implemented once per entity type. The resolver keys all of its
// bookkeeping by Type values, so implementations must be comparable and
// every row of a type must return the same value.
type Type interface {
	// Name returns the entity type name (e.g., "User").
	Name() string
	// Table returns the storage table of the type.
	Table() string
	// IDField returns the primary key field name.
	IDField() string
	// References returns the fields holding IDs of rows of other types.
	References() []Reference
	// Inverses returns the relations through which other rows belong to this type.
	Inverses() []Inverse
	// SoftDeletable reports whether rows of the type may be soft-deleted.
	SoftDeletable() bool
	// DeletedAtField returns the deleted-at field. Only meaningful for
	// soft-deletable types.
	DeletedAtField() string
}

// Reference is a field whose value is the ID of a row of Target.
type Reference struct {
	Field  string
	Target string
	Policy Policy
}

// Inverse declares that rows of Target whose Field equals the declaring
// row's ID belong to it.
type Inverse struct {
	Name   string
	Target string
	Field  string
	Policy Policy
}

// Entity is a loaded row.
type Entity interface {
	Type() Type
	// ID returns the primary key. It must be a comparable value.
	ID() any
	// Fields returns the field values keyed by field name.
	Fields() map[string]any
	// ApplyFields refreshes the in-memory values after a mutation.
	ApplyFields(map[string]any)
}

// Catalog resolves entity type names.
type Catalog interface {
	Lookup(name string) (Type, bool)
}

// Batch is one mutation over a set of rows of a single type.
// Field and At are only set for soft batches.
type Batch struct {
	Kind  DeleteKind
	Type  Type
	Field string
	At    time.Time
	IDs   []any
}

// Database is the storage the resolver reads related rows from and
// executes batches on.
type Database interface {
	// Now returns the timestamp applied to soft-deleted rows.
	Now() time.Time
	// Find returns the rows of t whose field equals value, skipping rows
	// whose ID is in exclude.
	Find(ctx context.Context, t Type, field string, value any, exclude []any) ([]Entity, error)
	// ExecBatch executes b and returns the number of affected rows.
	ExecBatch(ctx context.Context, b Batch) (int64, error)
}
