package store

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
	"github.com/syssam/veloxdb/dialect"
	"github.com/syssam/veloxdb/schema"
)

// Client reads and deletes rows of the registered entity types.
// It is safe for concurrent use; every delete call builds its own resolver.
type Client struct {
	drv      dialect.Driver
	registry *schema.Registry
	log      *slog.Logger
	now      func() time.Time
	cache    veloxdb.Cache
	cacheTTL time.Duration
	metrics  *metrics
	// tables collects the tables a transaction client wrote to. It is nil
	// outside transactions.
	tables map[string]struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger of the client and of its resolvers.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the clock soft deletes are timestamped with.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCache caches Get results in cache for ttl. A zero ttl never expires.
// Every executed batch invalidates the cached rows of its table.
func WithCache(cache veloxdb.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithMetrics registers the cascade counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}

// NewClient returns a client over drv for the types of registry.
func NewClient(drv dialect.Driver, registry *schema.Registry, opts ...Option) *Client {
	c := &Client{
		drv:      drv,
		registry: registry,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver returns the underlying driver.
func (c *Client) Driver() dialect.Driver {
	return c.drv
}

// Registry returns the schema registry of the client.
func (c *Client) Registry() *schema.Registry {
	return c.registry
}

// Close closes the underlying driver.
func (c *Client) Close() error {
	return c.drv.Close()
}

// Lookup implements cascade.Catalog.
func (c *Client) Lookup(name string) (cascade.Type, bool) {
	return c.registry.Lookup(name)
}

// Now implements cascade.Database.
func (c *Client) Now() time.Time {
	return c.now()
}

func (c *Client) descriptor(name string) (*schema.Descriptor, error) {
	d, ok := c.registry.Descriptor(name)
	if !ok {
		return nil, veloxdb.NewNotFoundError("entity type " + name)
	}
	return d, nil
}

var (
	_ cascade.Database = (*Client)(nil)
	_ cascade.Catalog  = (*Client)(nil)
)
