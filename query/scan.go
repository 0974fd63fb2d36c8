package query

import (
	"context"
	"database/sql"
	"slices"
)

// Querier runs a query. *sql.DB, *sql.Conn and *sql.Tx implement it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Scanner is implemented by the generated row types. ScanValues returns the
// field addresses in column order.
type Scanner interface {
	ScanValues() []any
}

// All runs s and scans every row into a new T. Without Select, the
// statement selects "*", which matches the field order of generated rows.
//
//	users, err := query.All[model.User](ctx, db, dialect.SQLite,
//	    query.From(model.Users).Where(model.Users.Name.NotNull()))
func All[T any, P interface {
	*T
	Scanner
}](ctx context.Context, db Querier, dialect string, s *Selector) ([]*T, error) {
	stmt, args := s.Query(dialect)
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewQueryError(s.table, "select", err)
	}
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v := new(T)
		if err := rows.Scan(P(v).ScanValues()...); err != nil {
			return nil, NewQueryError(s.table, "scan", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError(s.table, "scan", err)
	}
	return out, nil
}

// Only runs s and returns its single row. It fails with a NotFoundError when
// no row matched and a NotSingularError when several did.
func Only[T any, P interface {
	*T
	Scanner
}](ctx context.Context, db Querier, dialect string, s *Selector) (*T, error) {
	rows, err := All[T, P](ctx, db, dialect, s.Clone().Limit(2))
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 1:
		return rows[0], nil
	case 0:
		return nil, NewNotFoundError(s.table)
	default:
		return nil, NewNotSingularError(s.table)
	}
}

// Clone returns a copy of s that can be modified independently.
func (s *Selector) Clone() *Selector {
	c := &Selector{
		table:   s.table,
		columns: slices.Clone(s.columns),
		where:   slices.Clone(s.where),
		order:   slices.Clone(s.order),
	}
	if s.limit != nil {
		n := *s.limit
		c.limit = &n
	}
	if s.offset != nil {
		n := *s.offset
		c.offset = &n
	}
	return c
}
