package cascade

import (
	"context"

	"github.com/syssam/veloxdb"
)

// Execute resolves the cascade and runs one batch per type: soft batches
// first, then hard batches in dependency order. It reports whether the
// batch holding the originating entity affected at least one row.
//
// Batches are not wrapped in a transaction. A storage error stops
// execution and leaves earlier batches applied.
func (r *Resolver) Execute(ctx context.Context) (bool, error) {
	if err := r.Resolve(ctx); err != nil {
		return false, err
	}
	var (
		affected bool
		origin   = r.entity.Type()
	)
	for _, t := range r.soft.types() {
		n, err := r.exec(ctx, Batch{
			Kind:  Soft,
			Type:  t,
			Field: t.DeletedAtField(),
			At:    r.now,
			IDs:   r.soft.ids(t),
		})
		if err != nil {
			return false, err
		}
		if r.kind == Soft && t == origin {
			affected = n > 0
		}
	}
	for _, t := range r.order {
		n, err := r.exec(ctx, Batch{
			Kind: Regular,
			Type: t,
			IDs:  r.regular.ids(t),
		})
		if err != nil {
			return false, err
		}
		if r.kind == Regular && t == origin {
			affected = n > 0
		}
	}
	if r.kind == Soft {
		r.entity.ApplyFields(map[string]any{origin.DeletedAtField(): r.now})
	}
	return affected, nil
}

func (r *Resolver) exec(ctx context.Context, b Batch) (int64, error) {
	n, err := r.db.ExecBatch(ctx, b)
	if err != nil {
		op := "delete"
		if b.Kind == Soft {
			op = "soft-delete"
		}
		return 0, veloxdb.NewMutationError(b.Type.Name(), op, err)
	}
	r.log.DebugContext(ctx, "cascade batch",
		"type", b.Type.Name(),
		"kind", b.Kind,
		"ids", len(b.IDs),
		"affected", n,
	)
	return n, nil
}
