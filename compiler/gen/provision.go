package gen

import (
	"context"
	"errors"

	"github.com/syssam/domaingen/compiler/export"
	"github.com/syssam/domaingen/dialect/sql"
	"github.com/syssam/domaingen/project"
)

var errNilDatabase = errors.New("provisioner returned no database")

// MemoryProvisioner returns a provisioner of in-memory SQLite databases.
// Every database it creates is uniquely named and discarded on Close.
func MemoryProvisioner() Provisioner {
	return ProvisionFunc(func(ctx context.Context) (Database, error) {
		drv, err := sql.OpenMemory(ctx)
		if err != nil {
			return nil, err
		}
		return drv, nil
	})
}

// ScratchProvisioner returns a provisioner creating a throw-away database on
// the server at devURL. The database is dropped on Close.
func ScratchProvisioner(devURL string) Provisioner {
	return ProvisionFunc(func(ctx context.Context) (Database, error) {
		drv, err := sql.OpenScratch(ctx, devURL)
		if err != nil {
			return nil, err
		}
		return drv, nil
	})
}

func defaultProvisioner(devURL string) (Provisioner, string) {
	if devURL != "" {
		return ScratchProvisioner(devURL), "scratch"
	}
	return MemoryProvisioner(), "memory"
}

// defaultExporter returns the exporter selected by the configuration.
func (g *Generator) defaultExporter() (Exporter, error) {
	if g.config.Template != "" {
		e, err := export.ParseTemplateFile(g.config.Template)
		if err != nil {
			return nil, err
		}
		return e.WithWorkers(g.config.Workers), nil
	}
	return export.NewJenniferExporter().WithWorkers(g.config.Workers), nil
}

func (g *Generator) registry() Project {
	if g.project != nil {
		return g.project
	}
	return project.OpenManifest(g.config.ManifestPath())
}
