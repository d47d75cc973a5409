package cascade

import (
	"context"
	"errors"
	"sort"
	"time"
)

// testType is an in-memory Type.
type testType struct {
	name string
	refs []Reference
	invs []Inverse
	soft bool
}

func (t *testType) Name() string            { return t.name }
func (t *testType) Table() string           { return t.name + "s" }
func (t *testType) IDField() string         { return "id" }
func (t *testType) References() []Reference { return t.refs }
func (t *testType) Inverses() []Inverse     { return t.invs }
func (t *testType) SoftDeletable() bool     { return t.soft }
func (t *testType) DeletedAtField() string  { return "deleted_at" }

// testRow is an in-memory Entity.
type testRow struct {
	typ    *testType
	fields map[string]any
}

func (r *testRow) Type() Type             { return r.typ }
func (r *testRow) ID() any                { return r.fields["id"] }
func (r *testRow) Fields() map[string]any { return r.fields }
func (r *testRow) ApplyFields(m map[string]any) {
	for k, v := range m {
		r.fields[k] = v
	}
}

type testCatalog map[string]Type

func (c testCatalog) Lookup(name string) (Type, bool) {
	t, ok := c[name]
	return t, ok
}

func catalog(types ...*testType) testCatalog {
	c := make(testCatalog, len(types))
	for _, t := range types {
		c[t.name] = t
	}
	return c
}

// testDB stores rows in memory and applies batches to them.
type testDB struct {
	now     time.Time
	rows    map[*testType][]*testRow
	batches []Batch
	finds   int
	failOn  *testType
}

func newTestDB() *testDB {
	return &testDB{
		now:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		rows: make(map[*testType][]*testRow),
	}
}

func (db *testDB) insert(t *testType, fields map[string]any) *testRow {
	r := &testRow{typ: t, fields: fields}
	db.rows[t] = append(db.rows[t], r)
	return r
}

// get returns a detached copy of the stored row.
func (db *testDB) get(t *testType, id any) (*testRow, bool) {
	for _, r := range db.rows[t] {
		if r.ID() == id {
			return &testRow{typ: t, fields: copyFields(r.fields)}, true
		}
	}
	return nil, false
}

// load is get for rows that must exist.
func (db *testDB) load(t *testType, id any) *testRow {
	r, ok := db.get(t, id)
	if !ok {
		panic("row not found")
	}
	return r
}

func (db *testDB) Now() time.Time { return db.now }

func (db *testDB) Find(_ context.Context, t Type, field string, value any, exclude []any) ([]Entity, error) {
	db.finds++
	skip := make(map[any]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	var out []Entity
	for _, r := range db.rows[t.(*testType)] {
		if r.fields[field] == value && !skip[r.ID()] {
			out = append(out, &testRow{typ: r.typ, fields: copyFields(r.fields)})
		}
	}
	return out, nil
}

func (db *testDB) ExecBatch(_ context.Context, b Batch) (int64, error) {
	t := b.Type.(*testType)
	if db.failOn == t {
		return 0, errors.New("connection reset")
	}
	db.batches = append(db.batches, b)
	match := make(map[any]bool, len(b.IDs))
	for _, id := range b.IDs {
		match[id] = true
	}
	var (
		n    int64
		kept []*testRow
	)
	for _, r := range db.rows[t] {
		switch {
		case !match[r.ID()]:
			kept = append(kept, r)
		case b.Kind == Soft:
			r.fields[b.Field] = b.At
			n++
			kept = append(kept, r)
		default:
			n++
		}
	}
	db.rows[t] = kept
	return n, nil
}

func copyFields(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// batchSummary is a comparable view of a batch.
type batchSummary struct {
	Kind DeleteKind
	Type string
	IDs  []int
}

func summarize(bs []Batch) []batchSummary {
	out := make([]batchSummary, 0, len(bs))
	for _, b := range bs {
		ids := make([]int, 0, len(b.IDs))
		for _, id := range b.IDs {
			ids = append(ids, id.(int))
		}
		sort.Ints(ids)
		out = append(out, batchSummary{Kind: b.Kind, Type: b.Type.Name(), IDs: ids})
	}
	return out
}
