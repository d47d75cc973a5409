package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/veloxdb/dialect"
)

// Tx is a Client whose statements run inside one database transaction.
// Reads inside a transaction bypass the cache, and the tables it writes to
// are invalidated in the parent cache once it ends.
type Tx struct {
	*Client
	tx     dialect.Tx
	parent *Client
}

// Tx starts a transaction. Deletes through the returned Tx are applied
// atomically on Commit.
func (c *Client) Tx(ctx context.Context) (*Tx, error) {
	if _, ok := c.drv.(*txDriver); ok {
		return nil, errors.New("store: cannot start a transaction within a transaction")
	}
	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: starting a transaction: %w", err)
	}
	cfg := *c
	cfg.drv = &txDriver{tx: tx, dialect: c.drv.Dialect()}
	cfg.cache = nil
	if c.cache != nil {
		cfg.tables = make(map[string]struct{})
	}
	return &Tx{Client: &cfg, tx: tx, parent: c}, nil
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	defer tx.flush()
	return tx.tx.Commit()
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	defer tx.flush()
	return tx.tx.Rollback()
}

// flush invalidates the parent cache for every table written so far.
func (tx *Tx) flush() {
	for table := range tx.tables {
		tx.parent.invalidate(context.Background(), table)
		delete(tx.tables, table)
	}
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := c.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if v := recover(); v != nil {
			_ = tx.Rollback()
			panic(v)
		}
	}()
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("store: rolling back transaction: %w", rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing transaction: %w", err)
	}
	return nil
}

// txDriver binds the statements of a Tx client to its transaction.
type txDriver struct {
	tx      dialect.Tx
	dialect string
}

func (d *txDriver) Exec(ctx context.Context, query string, args, v any) error {
	return d.tx.Exec(ctx, query, args, v)
}

func (d *txDriver) Query(ctx context.Context, query string, args, v any) error {
	return d.tx.Query(ctx, query, args, v)
}

func (d *txDriver) Tx(context.Context) (dialect.Tx, error) {
	return nil, errors.New("store: nested transactions are not supported")
}

// Close is a nop; the transaction ends with Commit or Rollback.
func (d *txDriver) Close() error { return nil }

func (d *txDriver) Dialect() string { return d.dialect }

var _ dialect.Driver = (*txDriver)(nil)
