// Package dialect provides database dialect abstraction for veloxdb.
//
// This package defines the interfaces and types used for database-specific
// operations, allowing the store to support multiple database backends including
// PostgreSQL, MySQL, and SQLite.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// Driver is what the store executes cascade batches and row lookups on:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The cascade engine does not open transactions itself. Callers that need an
// all-or-nothing delete pass a Tx (which is also an ExecQuerier) to the store.
//
// # Usage
//
//	import (
//	    "github.com/syssam/veloxdb/dialect"
//	    "github.com/syssam/veloxdb/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	client := store.NewClient(drv, registry)
//
// # Sub-packages
//
//   - dialect/sql: statement builders and driver implementation
//   - dialect/sql/sqlgraph: constraint error classification
package dialect
