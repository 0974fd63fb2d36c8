package gen

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"ariga.io/atlas/sql/schema"
)

// Metadata is the schema-metadata accessor of a live database.
type Metadata = schema.Inspector

type (
	// Database is an ephemeral database owned by one run.
	Database interface {
		// ExecBatch executes a batch of SQL statements.
		ExecBatch(ctx context.Context, batch string) error
		// Metadata returns the schema-metadata accessor of the database.
		Metadata(ctx context.Context) (Metadata, error)
		// Close releases the database and discards its contents.
		Close() error
	}

	// Provisioner creates a fresh, empty database.
	Provisioner interface {
		Provision(ctx context.Context) (Database, error)
	}

	// ProvisionFunc adapts a function to the Provisioner interface.
	ProvisionFunc func(context.Context) (Database, error)

	// Exporter turns schema metadata into generated sources under dir,
	// in the package named pkg.
	Exporter interface {
		Export(ctx context.Context, meta Metadata, pkg, dir string) error
	}

	// ExportFunc adapts a function to the Exporter interface.
	ExportFunc func(ctx context.Context, meta Metadata, pkg, dir string) error

	// Project is the build description generated sources are registered with.
	Project interface {
		AddCompileSourceRoot(dir string) error
	}
)

// Provision calls f(ctx).
func (f ProvisionFunc) Provision(ctx context.Context) (Database, error) {
	return f(ctx)
}

// Export calls f(ctx, meta, pkg, dir).
func (f ExportFunc) Export(ctx context.Context, meta Metadata, pkg, dir string) error {
	return f(ctx, meta, pkg, dir)
}

// State is a step of a generator run.
type State int

// Run states, in the order a successful run reaches them.
const (
	StateStart State = iota
	StateValidated
	StateProvisioned
	StateLoaded
	StateExported
	StateRegistered
	StateFailed
)

var stateNames = [...]string{
	StateStart:       "start",
	StateValidated:   "validated",
	StateProvisioned: "provisioned",
	StateLoaded:      "loaded",
	StateExported:    "exported",
	StateRegistered:  "registered",
	StateFailed:      "failed",
}

// String returns the name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Result describes a finished run.
type Result struct {
	// State is StateRegistered on success and StateFailed otherwise.
	State State
	// Reached is the last state the run completed.
	Reached State
	// Target is the absolute path of the output directory.
	Target   string
	Duration time.Duration
}

// Generator loads a schema description into an ephemeral database and
// exports its metadata as Go sources. A Generator runs its steps in order
// and may be run repeatedly; every run provisions its own database.
type Generator struct {
	config      *Config
	provisioner Provisioner
	exporter    Exporter
	project     Project
	logger      *slog.Logger
}

// NewGenerator returns a generator for c. Unless overridden, the database
// is chosen by c.DevURL, the models are rendered by the jennifer exporter
// (or the template exporter when c.Template is set), and the target is
// registered in the manifest at c.ManifestPath().
func NewGenerator(c *Config) *Generator {
	return &Generator{
		config: c,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithProvisioner sets the database provisioner.
func (g *Generator) WithProvisioner(p Provisioner) *Generator {
	if p != nil {
		g.provisioner = p
	}
	return g
}

// WithExporter sets the metadata exporter.
func (g *Generator) WithExporter(e Exporter) *Generator {
	if e != nil {
		g.exporter = e
	}
	return g
}

// WithProject sets the build description.
func (g *Generator) WithProject(p Project) *Generator {
	if p != nil {
		g.project = p
	}
	return g
}

// WithLogger sets the logger the steps of a run are reported to.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.logger = l
	}
	return g
}

// Config returns the configuration of the generator.
func (g *Generator) Config() *Config {
	return g.config
}

// Run executes Validate, Provision, Load, Export and Register in order. The
// database is closed on every path; a failure to close it is logged and never
// replaces the error of the run.
func (g *Generator) Run(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	res = &Result{State: StateStart, Reached: StateStart}
	log := g.logger
	if g.config != nil {
		log = log.With("schema", g.config.Schema, "target", g.config.Target, "package", g.config.Package)
	}
	defer func() {
		res.Duration = time.Since(start)
		if err != nil {
			res.State = StateFailed
			log.Error("generation failed", "step", res.Reached.String(), "error", err)
		}
	}()

	exporter, err := g.validate()
	if err != nil {
		return res, err
	}
	res.Reached = StateValidated
	log.Debug("configuration validated", "step", "validate")

	db, err := g.provision(ctx)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warn("close database", "error", cerr)
		}
	}()
	res.Reached = StateProvisioned
	log.Debug("database provisioned", "step", "provision")

	if err := g.load(ctx, db); err != nil {
		return res, err
	}
	res.Reached = StateLoaded
	log.Debug("schema loaded", "step", "load")

	meta, err := db.Metadata(ctx)
	if err != nil {
		return res, NewExportError(g.config.Package, g.config.Target, err)
	}
	if err := exporter.Export(ctx, meta, g.config.Package, g.config.Target); err != nil {
		return res, NewExportError(g.config.Package, g.config.Target, err)
	}
	res.Reached = StateExported
	log.Debug("sources exported", "step", "export")

	abs, err := filepath.Abs(g.config.Target)
	if err != nil {
		return res, NewRegistrationError(g.config.Target, err)
	}
	if err := g.registry().AddCompileSourceRoot(abs); err != nil {
		return res, NewRegistrationError(abs, err)
	}
	res.Target = abs
	res.Reached = StateRegistered
	res.State = StateRegistered
	log.Info("sources generated", "step", "register", "root", abs, "elapsed", time.Since(start))
	return res, nil
}

// provision creates the database of the run.
func (g *Generator) provision(ctx context.Context) (Database, error) {
	p, name := g.provisioner, "custom"
	if p == nil {
		p, name = defaultProvisioner(g.config.DevURL)
	}
	db, err := p.Provision(ctx)
	if err != nil {
		return nil, NewProvisioningError(name, err)
	}
	if db == nil {
		return nil, NewProvisioningError(name, errNilDatabase)
	}
	return db, nil
}
