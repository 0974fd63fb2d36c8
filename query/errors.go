package query

import (
	"errors"
	"fmt"
)

// Sentinel errors of the scan helpers.
var (
	// ErrNotFound is returned when a query matched no rows.
	ErrNotFound = errors.New("query: row not found")

	// ErrNotSingular is returned when a query that expects exactly one row
	// matched several.
	ErrNotSingular = errors.New("query: row not singular")
)

// NotFoundError is returned by Only when no row matched.
type NotFoundError struct {
	table string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("query: %s not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the queried table.
func (e *NotFoundError) Table() string { return e.table }

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError is returned by Only when more than one row matched.
type NotSingularError struct {
	table string
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	return fmt.Sprintf("query: %s not singular", e.table)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Table returns the queried table.
func (e *NotSingularError) Table() string { return e.table }

// NewNotSingularError returns a new NotSingularError for the given table.
func NewNotSingularError(table string) *NotSingularError {
	return &NotSingularError{table: table}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// QueryError wraps a database error with the table and operation.
type QueryError struct {
	Table string // Table being queried
	Op    string // "select" or "scan"
	Err   error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}
