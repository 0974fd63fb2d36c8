package query

// Table is the query-model handle of one table or view. Generated query
// models embed it.
type Table struct {
	name string
}

// NewTable returns the handle of the named table.
func NewTable(name string) Table { return Table{name: name} }

// TableName returns the table name.
func (t Table) TableName() string { return t.name }

// Column is a typed column of a table. T is the Go type of the column values,
// so predicates only accept values of the right type.
//
//	var Users = QUser{
//	    Table: query.NewTable("users"),
//	    Name:  query.NewColumn[string]("users", "name"),
//	}
//	query.From(Users).Where(Users.Name.EQ("a8m"))
type Column[T any] struct {
	table string
	name  string
}

// NewColumn returns the column name of table.
func NewColumn[T any](table, name string) Column[T] {
	return Column[T]{table: table, name: name}
}

// Name returns the column name.
func (c Column[T]) Name() string { return c.name }

// Table returns the name of the table the column belongs to.
func (c Column[T]) Table() string { return c.table }

// ColumnName returns the table-qualified column name.
func (c Column[T]) ColumnName() string {
	if c.table == "" {
		return c.name
	}
	return c.table + "." + c.name
}

// EQ returns a predicate that checks if the column equals the given value.
func (c Column[T]) EQ(v T) Predicate { return compare(c.ColumnName(), " = ", v) }

// NEQ returns a predicate that checks if the column does not equal the given value.
func (c Column[T]) NEQ(v T) Predicate { return compare(c.ColumnName(), " <> ", v) }

// GT returns a predicate that checks if the column is greater than the given value.
func (c Column[T]) GT(v T) Predicate { return compare(c.ColumnName(), " > ", v) }

// GTE returns a predicate that checks if the column is greater than or equal to the given value.
func (c Column[T]) GTE(v T) Predicate { return compare(c.ColumnName(), " >= ", v) }

// LT returns a predicate that checks if the column is less than the given value.
func (c Column[T]) LT(v T) Predicate { return compare(c.ColumnName(), " < ", v) }

// LTE returns a predicate that checks if the column is less than or equal to the given value.
func (c Column[T]) LTE(v T) Predicate { return compare(c.ColumnName(), " <= ", v) }

// In returns a predicate that checks if the column value is in the given list.
// An empty list matches nothing.
func (c Column[T]) In(vs ...T) Predicate { return in(c.ColumnName(), false, vs) }

// NotIn returns a predicate that checks if the column value is not in the given list.
// An empty list matches everything.
func (c Column[T]) NotIn(vs ...T) Predicate { return in(c.ColumnName(), true, vs) }

// IsNull returns a predicate that checks if the column is NULL.
func (c Column[T]) IsNull() Predicate {
	name := c.ColumnName()
	return func(b *Builder) { b.Ident(name).WriteString(" IS NULL") }
}

// NotNull returns a predicate that checks if the column is not NULL.
func (c Column[T]) NotNull() Predicate {
	name := c.ColumnName()
	return func(b *Builder) { b.Ident(name).WriteString(" IS NOT NULL") }
}

// Asc orders by the column in ascending order.
func (c Column[T]) Asc() Order { return Order{column: c.ColumnName()} }

// Desc orders by the column in descending order.
func (c Column[T]) Desc() Order { return Order{column: c.ColumnName(), desc: true} }

// Order is one ORDER BY term.
type Order struct {
	column string
	desc   bool
}
