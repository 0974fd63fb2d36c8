package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unicode"
	"unicode/utf8"

	"ariga.io/atlas/sql/schema"
	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// Header is the first line of every generated file.
const Header = "Code generated by domaingen. DO NOT EDIT."

// JenniferExporter renders one model file per table with jennifer.
type JenniferExporter struct {
	workers int
}

// NewJenniferExporter returns an exporter that renders GOMAXPROCS files in
// parallel.
func NewJenniferExporter() *JenniferExporter {
	return &JenniferExporter{workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers sets the number of parallel workers.
func (e *JenniferExporter) WithWorkers(n int) *JenniferExporter {
	if n > 0 {
		e.workers = n
	}
	return e
}

// Export writes the model of every table in meta under dir, in the
// directory derived from pkg.
func (e *JenniferExporter) Export(ctx context.Context, meta schema.Inspector, pkg, dir string) error {
	tables, err := Inspect(ctx, meta)
	if err != nil {
		return err
	}
	pkgDir, name, err := PackagePath(pkg)
	if err != nil {
		return err
	}
	out := filepath.Join(dir, filepath.FromSlash(pkgDir))
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("export: create output directory: %w", err)
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(e.workers)
	for _, t := range tables {
		t := t
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(Render(name, t), filepath.Join(out, t.FileName()))
		})
	}
	return errg.Wait()
}

// Render returns the model file of t in package pkg.
func Render(pkg string, t *Table) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(Header)
	f.ImportName(QueryPackage, "query")
	f.ImportName("github.com/google/uuid", "uuid")

	recv := receiver(t.Entity)
	f.Commentf("%s is the model entity for the %q %s.", t.Entity, t.Name, t.Kind())
	f.Type().Id(t.Entity).StructFunc(func(g *jen.Group) {
		for _, c := range t.Columns {
			g.Id(c.Field).Add(c.FieldCode()).Tag(map[string]string{
				"db":   c.Name,
				"json": c.JSONTag(),
			})
		}
	})
	f.Comment("ScanValues returns the scan destinations of the row fields, in column order.")
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Entity)).Id("ScanValues").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, c := range t.Columns {
				g.Op("&").Id(recv).Dot(c.Field)
			}
		})),
	)

	f.Commentf("%s is the query model of the %q %s.", t.QueryType(), t.Name, t.Kind())
	f.Type().Id(t.QueryType()).StructFunc(func(g *jen.Group) {
		g.Qual(QueryPackage, "Table")
		for _, c := range t.Columns {
			g.Id(c.QueryField).Qual(QueryPackage, "Column").Types(c.Type.Code())
		}
	})
	f.Commentf("%s is the query model instance of the %q %s.", t.Var, t.Name, t.Kind())
	f.Var().Id(t.Var).Op("=").Id(t.QueryType()).Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Id("Table")] = jen.Qual(QueryPackage, "NewTable").Call(jen.Lit(t.Name))
		for _, c := range t.Columns {
			d[jen.Id(c.QueryField)] = jen.Qual(QueryPackage, "NewColumn").Types(c.Type.Code()).Call(jen.Lit(t.Name), jen.Lit(c.Name))
		}
	}))
	f.Comment("Columns returns the column names, in column order.")
	f.Func().Params(jen.Id("q").Id(t.QueryType())).Id("Columns").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, c := range t.Columns {
				g.Lit(c.Name)
			}
		})),
	)
	return f
}

// receiver returns the receiver name of an entity type.
func receiver(entity string) string {
	r, _ := utf8.DecodeRuneInString(entity)
	return string(unicode.ToLower(r))
}

// writeFile renders f before touching the file system, so a rendering
// failure leaves no partial file behind.
func writeFile(f *jen.File, path string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("export: render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
