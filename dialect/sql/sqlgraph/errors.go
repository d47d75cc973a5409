// Package sqlgraph classifies driver errors raised by cascade batches.
package sqlgraph

import (
	"errors"
	"strings"
)

// ConstraintError is raised when a statement violates a known constraint.
type ConstraintError struct {
	Kind string // one of the Kind constants
	Err  error
}

// Kinds of constraint violations.
const (
	KindForeignKey = "foreign_key"
	KindUnique     = "unique"
	KindCheck      = "check"
)

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return "sqlgraph: " + e.Kind + " constraint violation: " + e.Err.Error()
}

// Unwrap returns the driver error.
func (e *ConstraintError) Unwrap() error { return e.Err }

// Classify wraps err in a *ConstraintError when it is a constraint
// violation and returns it unchanged otherwise.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsForeignKeyConstraintError(err):
		return &ConstraintError{Kind: KindForeignKey, Err: err}
	case IsUniqueConstraintError(err):
		return &ConstraintError{Kind: KindUnique, Err: err}
	case IsCheckConstraintError(err):
		return &ConstraintError{Kind: KindCheck, Err: err}
	}
	return err
}

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	var e *ConstraintError
	return errors.As(err, &e) ||
		IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// errorCoder is implemented by database errors that provide error codes
// (pq.Error, modernc.org/sqlite).
type errorCoder interface {
	Code() string
}

// errorNumberer is implemented by mysql.MySQLError-like errors.
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is implemented by errors that provide SQLSTATE codes (pgx).
type sqlStateError interface {
	SQLState() string
}

// violation describes how each driver reports one kind of constraint failure.
type violation struct {
	sqlState string
	mysql    []uint16
	messages []string // substring fallbacks
}

var violations = map[string]violation{
	KindUnique: {
		sqlState: "23505",
		mysql:    []uint16{1062},
		messages: []string{"Error 1062", "violates unique constraint", "UNIQUE constraint failed"},
	},
	KindForeignKey: {
		sqlState: "23503",
		// 1451: cannot delete or update a parent row, 1452: cannot add or update a child row.
		mysql:    []uint16{1451, 1452},
		messages: []string{"Error 1451", "Error 1452", "violates foreign key constraint", "FOREIGN KEY constraint failed"},
	},
	KindCheck: {
		sqlState: "23514",
		mysql:    []uint16{3819},
		messages: []string{"Error 3819", "violates check constraint", "CHECK constraint failed"},
	},
}

func (v violation) match(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[sqlStateError](err); ok && e.SQLState() == v.sqlState {
		return true
	}
	if e, ok := asError[errorCoder](err); ok && e.Code() == v.sqlState {
		return true
	}
	if e, ok := asError[errorNumberer](err); ok {
		for _, n := range v.mysql {
			if e.Number() == n {
				return true
			}
		}
	}
	msg := err.Error()
	for _, sub := range v.messages {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
func IsUniqueConstraintError(err error) bool {
	return violations[KindUnique].match(err)
}

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key
// constraint violation, e.g. a parent row deleted while children still reference it.
func IsForeignKeyConstraintError(err error) bool {
	return violations[KindForeignKey].match(err)
}

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
func IsCheckConstraintError(err error) bool {
	return violations[KindCheck].match(err)
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}
