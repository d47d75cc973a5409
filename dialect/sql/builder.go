package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/veloxdb/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders in this file.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      *strings.Builder // underlying builder.
	dialect string           // configured dialect.
	args    []any            // query parameters.
	total   int              // total number of parameters in query tree.
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{name}
}

// DialectBuilder prefixes all root builders with the Dialect setter.
type DialectBuilder struct {
	dialect string
}

// Select returns a Selector for the configured dialect.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	return &Selector{Builder: Builder{dialect: d.dialect}, columns: columns}
}

// Update returns an UpdateBuilder for the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{Builder: Builder{dialect: d.dialect}, table: table}
}

// Delete returns a DeleteBuilder for the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{Builder: Builder{dialect: d.dialect}, table: table}
}

func (b *Builder) init() {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
}

// WriteString writes the given string to the builder.
func (b *Builder) WriteString(s string) *Builder {
	b.init()
	b.sb.WriteString(s)
	return b
}

// Ident writes the quoted identifier. The dot in "schema.table" is kept
// outside the quotes.
func (b *Builder) Ident(s string) *Builder {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(b.Quote(p))
	}
	return b
}

// Quote quotes the given identifier with the characters based
// on the configured dialect.
func (b *Builder) Quote(ident string) string {
	quote := `"`
	if b.dialect == dialect.MySQL {
		quote = "`"
	}
	return quote + strings.ReplaceAll(ident, quote, quote+quote) + quote
}

// Arg appends an input argument to the builder and writes its placeholder.
func (b *Builder) Arg(a any) *Builder {
	b.total++
	b.args = append(b.args, a)
	if b.dialect == dialect.Postgres {
		b.WriteString("$" + strconv.Itoa(b.total))
	} else {
		b.WriteString("?")
	}
	return b
}

// Args appends a list of arguments separated by commas.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Arg(a[i])
	}
	return b
}

// Join joins a predicate into the builder, sharing its argument counter.
func (b *Builder) Join(p *Predicate) *Builder {
	if p == nil {
		return b
	}
	for _, fn := range p.fns {
		fn(b)
	}
	return b
}

// String returns the accumulated string.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) {
	return b.String(), b.args
}

// Dialect returns the dialect of the builder.
func (b Builder) Dialect() string {
	return b.dialect
}

// Predicate is a where predicate.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" = ").Arg(value)
	})
}

// IsNull returns the `IS NULL` predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// In returns the `IN` predicate. An empty list matches nothing.
func In(col string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(col).WriteString(" IN (").Args(args...).WriteString(")")
	})
}

// NotIn returns the `NOT IN` predicate. An empty list renders no condition,
// so callers must not rely on it as a standalone predicate.
func NotIn(col string, args ...any) *Predicate {
	if len(args) == 0 {
		return nil
	}
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" NOT IN (").Args(args...).WriteString(")")
	})
}

// And combines all given predicates with AND between them.
// Nil predicates are skipped.
func And(preds ...*Predicate) *Predicate {
	var ps []*Predicate
	for _, p := range preds {
		if p != nil && len(p.fns) > 0 {
			ps = append(ps, p)
		}
	}
	switch len(ps) {
	case 0:
		return nil
	case 1:
		return ps[0]
	}
	return P(func(b *Builder) {
		for i, p := range ps {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.Join(p)
		}
	})
}

// Selector is a builder for the `SELECT` statement.
type Selector struct {
	Builder
	columns []string
	from    string
	where   *Predicate
}

// From sets the source table of the SELECT statement.
func (s *Selector) From(table string) *Selector {
	s.from = table
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	s.where = And(s.where, p)
	return s
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect}
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c)
	}
	b.WriteString(" FROM ").Ident(s.from)
	if s.where != nil {
		b.WriteString(" WHERE ").Join(s.where)
	}
	return b.Query()
}

// UpdateBuilder is a builder for `UPDATE` statement.
type UpdateBuilder struct {
	Builder
	table   string
	columns []string
	values  []any
	where   *Predicate
}

// Set sets a column to a given value.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where adds a where predicate for update statement.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	u.where = And(u.where, p)
	return u
}

// Query returns query representation of an `UPDATE` statement.
func (u *UpdateBuilder) Query() (string, []any) {
	b := &Builder{dialect: u.dialect}
	b.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	for i, c := range u.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c).WriteString(" = ").Arg(u.values[i])
	}
	if u.where != nil {
		b.WriteString(" WHERE ").Join(u.where)
	}
	return b.Query()
}

// DeleteBuilder is a builder for `DELETE` statement.
type DeleteBuilder struct {
	Builder
	table string
	where *Predicate
}

// Where appends a where predicate to the `DELETE` statement.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	d.where = And(d.where, p)
	return d
}

// Query returns query representation of a `DELETE` statement.
func (d *DeleteBuilder) Query() (string, []any) {
	b := &Builder{dialect: d.dialect}
	b.WriteString("DELETE FROM ").Ident(d.table)
	if d.where != nil {
		b.WriteString(" WHERE ").Join(d.where)
	}
	return b.Query()
}

var (
	_ Querier = (*Selector)(nil)
	_ Querier = (*UpdateBuilder)(nil)
	_ Querier = (*DeleteBuilder)(nil)
)
