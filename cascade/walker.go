package cascade

import (
	"context"

	"github.com/syssam/veloxdb"
)

// visit schedules everything e pulls in when deleted with kind. Rows are
// scheduled before they are visited and every lookup excludes scheduled
// IDs, which bounds the walk on cyclic relation graphs.
func (r *Resolver) visit(ctx context.Context, e Entity, kind DeleteKind) error {
	t := e.Type()
	fields := e.Fields()
	for _, ref := range t.References() {
		if ref.Policy == None {
			continue
		}
		value := fields[ref.Field]
		if value == nil {
			continue
		}
		target, err := r.lookup(t, ref.Field, ref.Target)
		if err != nil {
			return err
		}
		child, ok := ChildKind(kind, ref.Policy, target)
		if !ok {
			continue
		}
		// Forward references record no dependency edge.
		rows, err := r.db.Find(ctx, target, target.IDField(), value, r.scheduled(target))
		if err != nil {
			return veloxdb.NewQueryError(target.Name(), "find", err)
		}
		if err := r.descend(ctx, rows, child); err != nil {
			return err
		}
	}
	for _, inv := range t.Inverses() {
		if inv.Policy == None {
			continue
		}
		target, err := r.lookup(t, inv.Name, inv.Target)
		if err != nil {
			return err
		}
		child, ok := ChildKind(kind, inv.Policy, target)
		if !ok {
			continue
		}
		rows, err := r.db.Find(ctx, target, inv.Field, e.ID(), r.scheduled(target))
		if err != nil {
			return veloxdb.NewQueryError(target.Name(), "find", err)
		}
		r.deps.record(target, t, child)
		if err := r.descend(ctx, rows, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) descend(ctx context.Context, rows []Entity, kind DeleteKind) error {
	for _, row := range rows {
		if !r.schedule(row, kind) {
			continue
		}
		if err := r.visit(ctx, row, kind); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) lookup(owner Type, field, name string) (Type, error) {
	target, ok := r.catalog.Lookup(name)
	if !ok || target == nil {
		return nil, veloxdb.NewUnsupportedReferenceError(owner.Name(), field, name)
	}
	return target, nil
}
