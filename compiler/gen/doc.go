// Package gen runs the domain model generator.
//
// A run loads a SQL schema description into an ephemeral database, hands the
// metadata of that database to an exporter, and registers the directory the
// exporter wrote to as a compile source root:
//
//	Validate → Provision → Load → Export → Register
//
// Each step either succeeds or fails the run with a typed error
// (ConfigurationError, ProvisioningError, SchemaLoadError,
// SchemaExecutionError, ExportError, RegistrationError). Nothing is retried.
// The database is closed on every exit path.
//
// # Usage
//
//	cfg, err := gen.NewConfig(
//	    gen.WithSchema("domain-desc.sql"),
//	    gen.WithTarget("internal/generated"),
//	    gen.WithPackage("com.example.model"),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := gen.NewGenerator(cfg).
//	    WithLogger(slog.Default()).
//	    Run(ctx)
//
// # Collaborators
//
// The database, the exporter and the build description are capability
// interfaces. By default the schema is loaded into an in-memory SQLite
// database (or a scratch database on the server named by Config.DevURL),
// models are rendered by export.JenniferExporter, and the target is recorded
// in a project.Manifest. Tests and embedders replace them with
// WithProvisioner, WithExporter and WithProject.
package gen
