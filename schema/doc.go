// Package schema declares entity types and their cascade relationships.
//
// Types are declared in Go with Entity and its options, or loaded from a
// YAML document with Load. A Registry of descriptors serves as the
// cascade.Catalog of the resolver and as the table metadata of the store.
//
//	reg := schema.NewRegistry().MustRegister(
//	    schema.Entity("User", schema.SoftDelete(""),
//	        schema.Inverse("projects", "Project", "owner_id", cascade.Same)),
//	    schema.Entity("Project", schema.SoftDelete(""),
//	        schema.Reference("owner_id", "User", cascade.None)),
//	)
package schema
