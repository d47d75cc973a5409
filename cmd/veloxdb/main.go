// Command veloxdb plans and runs cascading deletes against a database
// described by a YAML schema.
//
//	veloxdb --dialect sqlite --dsn file:app.db --schema schema.yaml plan User 1 --soft
//	veloxdb --config veloxdb.yaml delete User 1
package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "veloxdb:", err)
		os.Exit(1)
	}
}
