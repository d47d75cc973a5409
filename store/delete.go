package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
	"github.com/syssam/veloxdb/dialect/sql"
	"github.com/syssam/veloxdb/dialect/sql/sqlgraph"
	"github.com/syssam/veloxdb/schema"
)

// Delete hard-deletes row with its cascade. It reports whether the row
// itself was removed.
func (c *Client) Delete(ctx context.Context, row *Row) (bool, error) {
	return c.run(ctx, row, cascade.Regular)
}

// SoftDelete soft-deletes row with its cascade. It reports whether the row
// was live before the call. Types without a deleted-at field fail before any
// statement runs.
func (c *Client) SoftDelete(ctx context.Context, row *Row) (bool, error) {
	if !row.desc.SoftDeletable() {
		err := fmt.Errorf("%w: %s", veloxdb.ErrNotSoftDeletable, row.desc.Name())
		c.metrics.fail(err)
		return false, err
	}
	return c.run(ctx, row, cascade.Soft)
}

// Plan resolves the cascade of deleting row with kind without executing it.
func (c *Client) Plan(ctx context.Context, row *Row, kind cascade.DeleteKind) (*cascade.Plan, error) {
	r := c.resolver(row, kind)
	if err := r.Resolve(ctx); err != nil {
		return nil, err
	}
	return r.Plan(), nil
}

func (c *Client) run(ctx context.Context, row *Row, kind cascade.DeleteKind) (bool, error) {
	affected, err := c.resolver(row, kind).Execute(ctx)
	if err != nil {
		c.metrics.fail(err)
		return false, err
	}
	return affected, nil
}

func (c *Client) resolver(row *Row, kind cascade.DeleteKind) *cascade.Resolver {
	return cascade.New(c, c, row, kind, cascade.WithLogger(c.log))
}

// Find implements cascade.Database. Soft-deleted rows are included so a
// soft cascade still reaches the hard-deleted rows below them.
func (c *Client) Find(ctx context.Context, t cascade.Type, field string, value any, exclude []any) ([]cascade.Entity, error) {
	d, err := c.descriptor(t.Name())
	if err != nil {
		return nil, err
	}
	if field == d.IDField() {
		if value, err = schema.NormalizeID(d.IDType(), value); err != nil {
			return nil, err
		}
	}
	rows, err := c.selectRows(ctx, d, sql.And(
		sql.EQ(field, value),
		sql.NotIn(d.IDField(), exclude...),
	))
	if err != nil {
		return nil, err
	}
	out := make([]cascade.Entity, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

// ExecBatch implements cascade.Database. Soft batches stamp every listed
// row, including rows deleted earlier, so one call leaves a single
// deleted-at value behind.
func (c *Client) ExecBatch(ctx context.Context, b cascade.Batch) (int64, error) {
	var (
		query   string
		args    []any
		builder = sql.Dialect(c.drv.Dialect())
		id      = b.Type.IDField()
	)
	switch b.Kind {
	case cascade.Soft:
		query, args = builder.Update(b.Type.Table()).
			Set(b.Field, b.At).
			Where(sql.In(id, b.IDs...)).
			Query()
	case cascade.Regular:
		query, args = builder.Delete(b.Type.Table()).
			Where(sql.In(id, b.IDs...)).
			Query()
	default:
		return 0, fmt.Errorf("store: unknown delete kind %v", b.Kind)
	}
	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, b.Type.Table())
	c.metrics.batch(b, n)
	return n, nil
}

// classify turns driver constraint violations into *veloxdb.ConstraintError.
func classify(err error) error {
	err = sqlgraph.Classify(err)
	var ce *sqlgraph.ConstraintError
	if errors.As(err, &ce) {
		return veloxdb.NewConstraintError(ce.Kind, ce)
	}
	return err
}
