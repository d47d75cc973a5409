// Package cascade resolves and executes cascading deletes.
//
// Given one entity and a delete kind, a Resolver discovers every related row
// that must go with it, decides for each whether it is hard- or soft-deleted,
// orders the hard deletes so no foreign key is violated, and runs one batched
// statement per entity type. Planning completes before any statement runs, so
// a cycle or configuration error leaves the database untouched.
//
// # Policies
//
// Every reference field and inverse relation carries a Policy:
//
//   - None: the relationship never cascades.
//   - Same: related rows are deleted with the parent's kind. A soft parent
//     delete skips related types that are not soft-deletable entirely.
//   - ForceRegular: related rows are always hard-deleted.
//
// # Ordering
//
// Inverse relations record "child before parent" edges between types. Two
// types whose edges point at each other are ordered by the regular edge when
// the other one is soft, are unordered when both are soft, and fail with a
// *veloxdb.CycleError when both are regular. Reference-field cascades record
// no edge.
//
// # Usage
//
//	r := cascade.New(db, catalog, user, cascade.Soft)
//	affected, err := r.Execute(ctx)
//	if veloxdb.IsCycleError(err) {
//	    // nothing was deleted
//	}
//
// The resolver does not open a transaction. Wrap Execute in one when the
// batches must be applied atomically.
package cascade
