package store

import (
	"context"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/schema"
)

// cached returns the cached row for key, or nil on a miss. Cache failures
// are logged and treated as misses.
func (c *Client) cached(ctx context.Context, d *schema.Descriptor, key veloxdb.CacheKey) (*Row, error) {
	if c.cache == nil {
		return nil, nil
	}
	b, err := c.cache.Get(ctx, key.String())
	if err != nil {
		c.log.WarnContext(ctx, "cache get failed", "key", key.String(), "error", err)
		return nil, nil
	}
	if b == nil {
		return nil, nil
	}
	var m map[string]any
	if err := msgpack.Unmarshal(b, &m); err != nil {
		c.log.WarnContext(ctx, "cache decode failed", "key", key.String(), "error", err)
		return nil, nil
	}
	if err := c.normalize(d, m); err != nil {
		return nil, err
	}
	return NewRow(d, m), nil
}

func (c *Client) store(ctx context.Context, key veloxdb.CacheKey, row *Row) {
	if c.cache == nil {
		return
	}
	b, err := msgpack.Marshal(row.fields)
	if err != nil {
		c.log.WarnContext(ctx, "cache encode failed", "key", key.String(), "error", err)
		return
	}
	if err := c.cache.Set(ctx, key.String(), b, c.cacheTTL); err != nil {
		c.log.WarnContext(ctx, "cache set failed", "key", key.String(), "error", err)
	}
}

// invalidate drops every cached row of table. Transaction clients defer
// it until the transaction ends.
func (c *Client) invalidate(ctx context.Context, table string) {
	if c.tables != nil {
		c.tables[table] = struct{}{}
		return
	}
	if c.cache == nil {
		return
	}
	prefix := veloxdb.CacheKey{Table: table}.Prefix()
	if err := c.cache.DeletePrefix(ctx, prefix); err != nil {
		c.log.WarnContext(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
	}
}
