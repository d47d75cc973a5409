// Package sql provides the SQL driver and statement builders used by the store.
//
// # Builder Types
//
// The package provides one builder per statement a cascade runs:
//
//   - Builder: Low-level SQL string builder with identifier quoting
//   - Selector: SELECT query builder loading related rows
//   - UpdateBuilder: UPDATE statement builder for soft-delete batches
//   - DeleteBuilder: DELETE statement builder for hard-delete batches
//
// # Dialect Support
//
// Placeholders and identifier quoting adapt to the dialect:
//
//	import "github.com/syssam/veloxdb/dialect"
//
//	// PostgreSQL: SELECT "id", "name" FROM "users" WHERE "status" = $1
//	sql.Dialect(dialect.Postgres).Select("id", "name").From("users").Where(sql.EQ("status", "active"))
//
//	// MySQL: DELETE FROM `users` WHERE `id` IN (?, ?)
//	sql.Dialect(dialect.MySQL).Delete("users").Where(sql.In("id", 1, 2))
//
// # Predicates
//
//	sql.EQ("name", "john")           // name = ?
//	sql.IsNull("deleted_at")         // deleted_at IS NULL
//	sql.In("id", 1, 2)               // id IN (?, ?)
//	sql.NotIn("id", 3)               // id NOT IN (?)
//	sql.And(p1, p2)                  // p1 AND p2
//
// In with no values matches nothing. NotIn with no values renders no
// condition and is dropped by And.
//
// # Drivers
//
// Driver adapts a *sql.DB to dialect.Driver. StatsDriver counts statements
// and logs slow ones, DebugDriver logs every statement through slog.
package sql
