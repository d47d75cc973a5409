// Package store runs cascading deletes against a SQL database.
//
// A Client pairs a dialect.Driver with a schema.Registry. It loads rows,
// serves as the cascade.Database and cascade.Catalog of the resolver, and
// executes each planned batch as a single UPDATE or DELETE statement.
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	if err != nil {
//	    return err
//	}
//	client := store.NewClient(drv, registry, store.WithMetrics(prometheus.DefaultRegisterer))
//	u, err := client.Get(ctx, "User", 1)
//	if err != nil {
//	    return err
//	}
//	affected, err := client.SoftDelete(ctx, u)
//
// Batches of one delete call are not atomic. Use WithTx to run a delete
// inside a transaction.
package store
