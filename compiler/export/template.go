package export

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"

	"ariga.io/atlas/sql/schema"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

//go:embed templates/model.tmpl
var modelTemplate string

// TemplateExporter renders one model file per table by executing a
// text/template and formatting the result with goimports.
type TemplateExporter struct {
	tmpl    *template.Template
	workers int
}

// TemplateData is the data a model template is executed with.
type TemplateData struct {
	Header   string
	Package  string
	Imports  []string
	Receiver string
	Table    *Table
}

// NewTemplateExporter returns an exporter using the built-in model template.
func NewTemplateExporter() *TemplateExporter {
	return &TemplateExporter{
		tmpl:    template.Must(template.New("model").Parse(modelTemplate)),
		workers: runtime.GOMAXPROCS(0),
	}
}

// ParseTemplateFile returns an exporter executing the template stored at
// path. The template is executed once per table with a TemplateData.
func ParseTemplateFile(path string) (*TemplateExporter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read template: %w", err)
	}
	tmpl, err := template.New("model").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("export: parse template %s: %w", path, err)
	}
	return &TemplateExporter{tmpl: tmpl, workers: runtime.GOMAXPROCS(0)}, nil
}

// WithWorkers sets the number of parallel workers.
func (e *TemplateExporter) WithWorkers(n int) *TemplateExporter {
	if n > 0 {
		e.workers = n
	}
	return e
}

// Export writes the model of every table in meta under dir, in the
// directory derived from pkg.
func (e *TemplateExporter) Export(ctx context.Context, meta schema.Inspector, pkg, dir string) error {
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
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for _, t := range tables {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return e.generateFile(name, t, filepath.Join(out, t.FileName()))
			}
		})
	}
	return eg.Wait()
}

func (e *TemplateExporter) generateFile(pkg string, t *Table, path string) error {
	var buf bytes.Buffer
	data := &TemplateData{
		Header:   Header,
		Package:  pkg,
		Imports:  t.Imports(),
		Receiver: receiver(t.Entity),
		Table:    t,
	}
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("export: execute template for %s: %w", t.Name, err)
	}
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output for debugging.
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("export: format %s: %w (unformatted written to %s)", filepath.Base(path), err, debugPath)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
