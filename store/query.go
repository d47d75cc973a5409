package store

import (
	"context"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/dialect/sql"
	"github.com/syssam/veloxdb/schema"
)

// QueryOption configures Get and FindBy.
type QueryOption func(*queryOptions)

type queryOptions struct {
	withDeleted bool
}

// WithDeleted includes soft-deleted rows in the result.
func WithDeleted() QueryOption {
	return func(o *queryOptions) {
		o.withDeleted = true
	}
}

func newQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Get returns the row of the named type with the given ID. Soft-deleted
// rows are reported as not found unless WithDeleted is passed.
func (c *Client) Get(ctx context.Context, typ string, id any, opts ...QueryOption) (*Row, error) {
	d, err := c.descriptor(typ)
	if err != nil {
		return nil, err
	}
	if id, err = schema.NormalizeID(d.IDType(), id); err != nil {
		return nil, veloxdb.NewQueryError(typ, "get", err)
	}
	o := newQueryOptions(opts)
	key := veloxdb.CacheKey{Table: d.Table(), Operation: "get", ID: id}
	row, err := c.cached(ctx, d, key)
	if err != nil {
		return nil, err
	}
	if row == nil {
		rows, err := c.selectRows(ctx, d, sql.EQ(d.IDField(), id))
		if err != nil {
			return nil, veloxdb.NewQueryError(typ, "get", err)
		}
		if len(rows) == 0 {
			return nil, veloxdb.NewNotFoundErrorWithID(typ, id)
		}
		row = rows[0]
		c.store(ctx, key, row)
	}
	if row.Deleted() && !o.withDeleted {
		return nil, veloxdb.NewNotFoundErrorWithID(typ, id)
	}
	return row, nil
}

// FindBy returns the rows of the named type whose field equals value.
// Soft-deleted rows are skipped unless WithDeleted is passed.
func (c *Client) FindBy(ctx context.Context, typ, field string, value any, opts ...QueryOption) ([]*Row, error) {
	d, err := c.descriptor(typ)
	if err != nil {
		return nil, err
	}
	o := newQueryOptions(opts)
	where := sql.EQ(field, value)
	if d.SoftDeletable() && !o.withDeleted {
		where = sql.And(where, sql.IsNull(d.DeletedAtField()))
	}
	rows, err := c.selectRows(ctx, d, where)
	if err != nil {
		return nil, veloxdb.NewQueryError(typ, "find", err)
	}
	return rows, nil
}

func (c *Client) selectRows(ctx context.Context, d *schema.Descriptor, where *sql.Predicate) ([]*Row, error) {
	query, args := sql.Dialect(c.drv.Dialect()).
		Select(d.Columns()...).
		From(d.Table()).
		Where(where).
		Query()
	var rows sql.Rows
	if err := c.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	maps, err := sql.ScanMaps(rows)
	if err != nil {
		return nil, err
	}
	out := make([]*Row, 0, len(maps))
	for _, m := range maps {
		if err := c.normalize(d, m); err != nil {
			return nil, err
		}
		out = append(out, NewRow(d, m))
	}
	return out, nil
}
