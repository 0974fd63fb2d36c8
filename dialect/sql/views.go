package sql

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/domaingen/dialect"
)

// viewQueries reads view metadata from the catalog of one dialect.
type viewQueries struct {
	// views returns the view names of a schema, one column per row.
	views func(schema string) (string, []any)
	// columns returns name, declared type and nullability of each view column.
	columns func(schema, view string) (string, []any)
	parse   func(string) (schema.Type, error)
}

var viewCatalog = map[string]viewQueries{
	dialect.SQLite: {
		views: func(string) (string, []any) {
			return "SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name", nil
		},
		columns: func(_, view string) (string, []any) {
			return `SELECT name, type, "notnull" = 0 FROM pragma_table_info(?) ORDER BY cid`, []any{view}
		},
		parse: sqlite.ParseType,
	},
	dialect.Postgres: {
		views: func(s string) (string, []any) {
			return "SELECT table_name FROM information_schema.views WHERE table_schema = $1 ORDER BY table_name", []any{s}
		},
		columns: func(s, view string) (string, []any) {
			return "SELECT column_name, data_type, is_nullable = 'YES' FROM information_schema.columns " +
				"WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position", []any{s, view}
		},
		parse: postgres.ParseType,
	},
	dialect.MySQL: {
		views: func(s string) (string, []any) {
			return "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.VIEWS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME", []any{s}
		},
		columns: func(s, view string) (string, []any) {
			return "SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE = 'YES' FROM INFORMATION_SCHEMA.COLUMNS " +
				"WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION", []any{s, view}
		},
		parse: mysql.ParseType,
	},
}

// viewInspector completes the schemas of an atlas inspector with their views.
// The open-source atlas drivers skip views, so they are read from the catalog.
type viewInspector struct {
	schema.Inspector
	db ExecQuerier
	q  viewQueries
}

// InspectSchema inspects the schema and, when views are requested and the
// underlying inspector returned none, adds the views of the catalog.
func (i *viewInspector) InspectSchema(ctx context.Context, name string, opts *schema.InspectOptions) (*schema.Schema, error) {
	s, err := i.Inspector.InspectSchema(ctx, name, opts)
	if err != nil {
		return nil, err
	}
	if (opts != nil && opts.Mode != 0 && !opts.Mode.Is(schema.InspectViews)) || len(s.Views) > 0 {
		return s, nil
	}
	views, err := i.views(ctx, s.Name)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: inspect views of %q: %w", s.Name, err)
	}
	s.AddViews(views...)
	return s, nil
}

func (i *viewInspector) views(ctx context.Context, ns string) ([]*schema.View, error) {
	query, args := i.q.views(ns)
	names, err := i.names(ctx, query, args)
	if err != nil {
		return nil, err
	}
	views := make([]*schema.View, 0, len(names))
	for _, name := range names {
		v := schema.NewView(name, "")
		cols, err := i.columns(ctx, ns, name)
		if err != nil {
			return nil, err
		}
		views = append(views, v.AddColumns(cols...))
	}
	return views, nil
}

func (i *viewInspector) names(ctx context.Context, query string, args []any) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (i *viewInspector) columns(ctx context.Context, ns, view string) ([]*schema.Column, error) {
	query, args := i.q.columns(ns, view)
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []*schema.Column
	for rows.Next() {
		var (
			name, raw string
			null      bool
		)
		if err := rows.Scan(&name, &raw, &null); err != nil {
			return nil, err
		}
		cols = append(cols, &schema.Column{
			Name: name,
			Type: &schema.ColumnType{Raw: raw, Type: i.parse(raw), Null: null},
		})
	}
	return cols, rows.Err()
}

// parse maps a declared type to an atlas type. Expression columns of SQLite
// views carry no declared type.
func (i *viewInspector) parse(raw string) schema.Type {
	if raw == "" {
		return &schema.UnsupportedType{}
	}
	t, err := i.q.parse(raw)
	if err != nil {
		return &schema.UnsupportedType{T: raw}
	}
	return t
}
