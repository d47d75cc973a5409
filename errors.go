package veloxdb

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("veloxdb: entity not found")

	// ErrCycle is returned when two or more entity types depend on each other
	// through regular cascades and no safe delete order exists.
	ErrCycle = errors.New("veloxdb: unsatisfiable delete cycle")

	// ErrUnsupportedReference is returned when a reference field or inverse
	// relation names a target that is not a known entity type.
	ErrUnsupportedReference = errors.New("veloxdb: reference target not supported")

	// ErrNotSoftDeletable is returned when a soft delete is requested for an
	// entity type that has no deleted-at field.
	ErrNotSoftDeletable = errors.New("veloxdb: entity type is not soft-deletable")
)

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("veloxdb: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("veloxdb: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// CycleError reports entity types whose rows must each be removed before
// the others. Types holds the type names in discovery order.
type CycleError struct {
	Types []string
}

// Error returns the error string.
func (e *CycleError) Error() string {
	return fmt.Sprintf("veloxdb: unsatisfiable delete cycle between %s", strings.Join(e.Types, " and "))
}

// Is reports whether the target error matches CycleError.
func (e *CycleError) Is(err error) bool {
	return err == ErrCycle
}

// NewCycleError returns a new CycleError for the given type names.
func NewCycleError(types ...string) *CycleError {
	return &CycleError{Types: types}
}

// IsCycleError returns true if the error is a CycleError.
func IsCycleError(err error) bool {
	if err == nil {
		return false
	}
	var e *CycleError
	return errors.As(err, &e)
}

// UnsupportedReferenceError is returned when a relationship points at a
// type the catalog does not know. It is a configuration error.
type UnsupportedReferenceError struct {
	Type   string // Entity type declaring the relationship
	Field  string // Reference field or inverse relation name
	Target string // Unknown target type name
}

// Error returns the error string.
func (e *UnsupportedReferenceError) Error() string {
	return fmt.Sprintf("veloxdb: %s.%s references %q: not supported", e.Type, e.Field, e.Target)
}

// Is reports whether the target error matches UnsupportedReferenceError.
func (e *UnsupportedReferenceError) Is(err error) bool {
	return err == ErrUnsupportedReference
}

// NewUnsupportedReferenceError returns a new UnsupportedReferenceError.
func NewUnsupportedReferenceError(typ, field, target string) *UnsupportedReferenceError {
	return &UnsupportedReferenceError{Type: typ, Field: field, Target: target}
}

// IsUnsupportedReference returns true if the error is an UnsupportedReferenceError.
func IsUnsupportedReference(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedReferenceError
	return errors.As(err, &e)
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("veloxdb: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "veloxdb: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("veloxdb: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// QueryError wraps a query error with additional context.
type QueryError struct {
	Entity string // Entity type being queried
	Op     string // Operation (e.g., "get", "find")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("veloxdb: querying %s (%s): %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("veloxdb: querying %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(entity, op string, err error) *QueryError {
	return &QueryError{Entity: entity, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MutationError wraps a mutation error with additional context.
type MutationError struct {
	Entity string // Entity type being mutated
	Op     string // Operation ("delete" or "soft-delete")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("veloxdb: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError returns a new MutationError.
func NewMutationError(entity, op string, err error) *MutationError {
	return &MutationError{Entity: entity, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
