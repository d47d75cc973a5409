// Package veloxdb is an entity-relational persistence layer built around a
// cascading-delete resolution engine.
//
// The root package holds the error types and the cache interface shared by
// the sub-packages:
//
//   - cascade: resolves and executes cascading hard and soft deletes
//   - schema: entity type descriptors, registries and YAML schema files
//   - store: SQL-backed entity access and the public delete entry points
//   - dialect, dialect/sql: driver abstraction and statement builders
//
// # Errors
//
//   - [ErrNotFound] - entity doesn't exist (or is soft-deleted)
//   - [ErrCycle] - two types depend on each other through regular cascades
//   - [ErrUnsupportedReference] - a relationship names an unknown type
//   - [ErrNotSoftDeletable] - soft delete requested for a type without deleted-at
//
// # Usage
//
//	client := store.NewClient(drv, registry)
//	user, err := client.Get(ctx, "User", 1)
//	if err != nil {
//	    return err
//	}
//	affected, err := client.SoftDelete(ctx, user)
package veloxdb
