package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/veloxdb"
)

// Resolver plans and executes the cascading delete of a single entity.
// A Resolver is used for one delete call and is not safe for concurrent use.
type Resolver struct {
	db      Database
	catalog Catalog
	entity  Entity
	kind    DeleteKind
	now     time.Time
	log     *slog.Logger

	regular *typeSet
	soft    *typeSet
	deps    *tracker
	order   []Type

	resolved bool
	err      error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for plan and batch logging.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a resolver deleting e with the given kind. The soft-delete
// timestamp is taken from db once, here.
func New(db Database, catalog Catalog, e Entity, kind DeleteKind, opts ...Option) *Resolver {
	r := &Resolver{
		db:      db,
		catalog: catalog,
		entity:  e,
		kind:    kind,
		now:     db.Now(),
		log:     slog.Default(),
		regular: newTypeSet(),
		soft:    newTypeSet(),
		deps:    newTracker(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the timestamp applied to every soft-deleted row.
func (r *Resolver) Now() time.Time {
	return r.now
}

// Resolve walks the relation graph and orders the hard-delete phase.
// It only runs once; later calls return the first result.
func (r *Resolver) Resolve(ctx context.Context) error {
	if r.resolved {
		return r.err
	}
	r.resolved = true
	r.err = r.resolve(ctx)
	return r.err
}

func (r *Resolver) resolve(ctx context.Context) error {
	t := r.entity.Type()
	if r.kind == Soft && !t.SoftDeletable() {
		return fmt.Errorf("%w: %s", veloxdb.ErrNotSoftDeletable, t.Name())
	}
	r.schedule(r.entity, r.kind)
	if err := r.visit(ctx, r.entity, r.kind); err != nil {
		return err
	}
	if !r.regular.empty() {
		sorted, err := order(r.regular.types(), r.deps)
		if err != nil {
			return err
		}
		r.order = sorted
	}
	r.log.DebugContext(ctx, "cascade resolved",
		"type", t.Name(),
		"id", r.entity.ID(),
		"kind", r.kind,
		"regular_types", len(r.order),
		"soft_types", len(r.soft.order),
	)
	return nil
}

// bucket returns the set rows of the given kind are scheduled into.
func (r *Resolver) bucket(kind DeleteKind) *typeSet {
	if kind == Soft {
		return r.soft
	}
	return r.regular
}

// schedule adds the entity to the bucket of kind. It returns false when
// the entity is already scheduled in either bucket.
func (r *Resolver) schedule(e Entity, kind DeleteKind) bool {
	t, id := e.Type(), e.ID()
	if r.regular.has(t, id) || r.soft.has(t, id) {
		return false
	}
	return r.bucket(kind).add(t, id)
}

// scheduled returns every ID of t already planned for deletion.
func (r *Resolver) scheduled(t Type) []any {
	return append(r.regular.ids(t), r.soft.ids(t)...)
}

// Step is the set of rows of one type removed by one batch.
type Step struct {
	Type Type
	IDs  []any
}

// Plan is the outcome of a successful Resolve.
type Plan struct {
	// Soft lists soft-deleted rows in discovery order.
	Soft []Step
	// Regular lists hard-deleted rows in execution order.
	Regular []Step
	// Edges lists the dependency edges recorded while walking.
	Edges []Edge
	// At is the deleted-at value of every soft-deleted row.
	At time.Time
}

// Plan returns the resolved plan, or nil if Resolve has not succeeded.
func (r *Resolver) Plan() *Plan {
	if !r.resolved || r.err != nil {
		return nil
	}
	p := &Plan{Edges: r.deps.edges(), At: r.now}
	for _, t := range r.soft.types() {
		p.Soft = append(p.Soft, Step{Type: t, IDs: r.soft.ids(t)})
	}
	for _, t := range r.order {
		p.Regular = append(p.Regular, Step{Type: t, IDs: r.regular.ids(t)})
	}
	return p
}
