package gen

import (
	"os"
	"strings"

	"github.com/syssam/domaingen/compiler/export"
)

// validate checks the configuration before any database exists and creates
// the output directory. It returns the exporter of the run.
func (g *Generator) validate() (Exporter, error) {
	c := g.config
	if c == nil {
		return nil, NewConfigurationError("Config", nil, "missing configuration", nil)
	}
	if strings.TrimSpace(c.Package) == "" {
		return nil, NewConfigurationError("Package", nil, "package is required", nil)
	}
	if _, _, err := export.PackagePath(c.Package); err != nil {
		return nil, NewConfigurationError("Package", c.Package, "invalid package name", err)
	}
	if c.Workers < 0 {
		return nil, NewConfigurationError("Workers", c.Workers, "workers cannot be negative", nil)
	}
	fi, err := os.Stat(c.Schema)
	if err != nil {
		return nil, NewConfigurationError("Schema", c.Schema, "invalid schema file", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, NewConfigurationError("Schema", c.Schema, "invalid schema file", nil)
	}
	if c.Target == "" {
		return nil, NewConfigurationError("Target", nil, "invalid output directory", nil)
	}
	// A failed MkdirAll is reported through the Stat below.
	mkErr := os.MkdirAll(c.Target, 0o755)
	if fi, err := os.Stat(c.Target); err != nil || !fi.IsDir() {
		if err == nil {
			err = mkErr
		}
		return nil, NewConfigurationError("Target", c.Target, "invalid output directory", err)
	}
	if g.exporter != nil {
		return g.exporter, nil
	}
	e, err := g.defaultExporter()
	if err != nil {
		return nil, NewConfigurationError("Template", c.Template, "invalid template", err)
	}
	return e, nil
}
