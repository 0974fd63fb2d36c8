package query

import "strconv"

// TableRef is implemented by Table and by every generated query model.
type TableRef interface {
	TableName() string
}

// Selectable is implemented by Column.
type Selectable interface {
	ColumnName() string
}

// Selector builds a SELECT statement over one table.
type Selector struct {
	table   string
	columns []string
	where   []Predicate
	order   []Order
	limit   *int
	offset  *int
}

// From starts a SELECT statement over the given table.
//
//	q, args := query.From(model.Users).
//	    Select(model.Users.ID, model.Users.Name).
//	    Where(model.Users.Name.NotNull()).
//	    Query(dialect.Postgres)
func From(t TableRef) *Selector {
	return &Selector{table: t.TableName()}
}

// Select sets the selected columns. No columns selects "*".
func (s *Selector) Select(cols ...Selectable) *Selector {
	for _, c := range cols {
		s.columns = append(s.columns, c.ColumnName())
	}
	return s
}

// Where appends predicates joined with AND.
func (s *Selector) Where(ps ...Predicate) *Selector {
	s.where = append(s.where, ps...)
	return s
}

// OrderBy appends ORDER BY terms.
func (s *Selector) OrderBy(orders ...Order) *Selector {
	s.order = append(s.order, orders...)
	return s
}

// Limit sets the LIMIT clause.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Offset sets the OFFSET clause.
func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Query renders the statement for the given dialect.
func (s *Selector) Query(d string) (string, []any) {
	b := NewBuilder(d)
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
	b.WriteString(" FROM ").Ident(s.table)
	if len(s.where) > 0 {
		b.WriteString(" WHERE ")
		And(s.where...)(b)
	}
	for i, o := range s.order {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.Ident(o.column)
		if o.desc {
			b.WriteString(" DESC")
		}
	}
	if s.limit != nil {
		b.WriteString(" LIMIT " + strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET " + strconv.Itoa(*s.offset))
	}
	return b.Query()
}
