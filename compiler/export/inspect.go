package export

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/schema"
)

// Inspect reads the tables and views of the current schema from meta and
// returns them sorted by name.
func Inspect(ctx context.Context, meta schema.Inspector) ([]*Table, error) {
	s, err := meta.InspectSchema(ctx, "", &schema.InspectOptions{
		Mode: schema.InspectTables | schema.InspectViews,
	})
	if err != nil {
		return nil, fmt.Errorf("export: inspect schema: %w", err)
	}
	tables := make([]*Table, 0, len(s.Tables)+len(s.Views))
	for _, t := range s.Tables {
		pk := make(map[string]bool)
		if t.PrimaryKey != nil {
			for _, p := range t.PrimaryKey.Parts {
				if p.C != nil {
					pk[p.C.Name] = true
				}
			}
		}
		table, err := newTable(t.Name, false, t.Columns, pk)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	for _, v := range s.Views {
		view, err := newTable(v.Name, true, v.Columns, nil)
		if err != nil {
			return nil, err
		}
		tables = append(tables, view)
	}
	slices.SortFunc(tables, func(a, b *Table) int {
		return strings.Compare(a.Name, b.Name)
	})
	if err := checkNames(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func newTable(name string, view bool, cols []*schema.Column, pk map[string]bool) (*Table, error) {
	columns, err := newColumns(name, cols, pk)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Name:    name,
		View:    view,
		Entity:  singular(name),
		Columns: columns,
	}
	t.Var = plural(t.Entity)
	if t.Var == t.Entity {
		t.Var = t.Entity + "Table"
	}
	return t, nil
}

// checkNames reports tables whose package-level declarations or files collide.
func checkNames(tables []*Table) error {
	var (
		idents = make(map[string]string)
		files  = make(map[string]string)
	)
	for _, t := range tables {
		for _, id := range []string{t.Entity, t.QueryType(), t.Var} {
			if prev, ok := idents[id]; ok && prev != t.Name {
				return fmt.Errorf("export: %q and %q both declare %s", prev, t.Name, id)
			}
			idents[id] = t.Name
		}
		if prev, ok := files[t.FileName()]; ok {
			return fmt.Errorf("export: %q and %q both write %s", prev, t.Name, t.FileName())
		}
		files[t.FileName()] = t.Name
	}
	return nil
}
