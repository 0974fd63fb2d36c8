package main

import (
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/domaingen/compiler/gen"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// flags holds the command-line parameters of a run.
type flags struct {
	config   string
	schema   string
	target   string
	pkg      string
	manifest string
	devURL   string
	template string
	workers  int
	watch    bool
	verbose  bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.schema, "schema", gen.DefaultSchema, "SQL schema description")
	fs.StringVar(&f.target, "out", gen.DefaultTarget, "output directory of the generated sources")
	fs.StringVar(&f.pkg, "package", "", "target package name, e.g. com.example.model (required)")
	fs.StringVar(&f.manifest, "manifest", "", "build description the output directory is registered with (default domaingen.yaml next to the schema)")
	fs.StringVar(&f.devURL, "dev-url", "", "load the schema into a scratch database on this postgres:// or mysql:// server")
	fs.StringVar(&f.template, "template", "", "text/template file rendering each model")
	fs.IntVar(&f.workers, "workers", 0, "files rendered in parallel (default GOMAXPROCS)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "regenerate whenever the schema file changes")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every step")
}

// configure builds the run configuration. Values from --config are the base;
// flags set on the command line override them.
func (f *flags) configure(fs *pflag.FlagSet) (*gen.Config, error) {
	var (
		cfg *gen.Config
		err error
	)
	if f.config != "" {
		cfg, err = gen.LoadConfigFile(f.config)
	} else {
		cfg, err = gen.NewConfig()
	}
	if err != nil {
		return nil, err
	}
	var opts []gen.Option
	set := func(name string, opt gen.Option) {
		if fs.Changed(name) {
			opts = append(opts, opt)
		}
	}
	set("schema", gen.WithSchema(f.schema))
	set("out", gen.WithTarget(f.target))
	set("package", gen.WithPackage(f.pkg))
	set("manifest", gen.WithManifest(f.manifest))
	set("dev-url", gen.WithDevURL(f.devURL))
	set("template", gen.WithTemplate(f.template))
	set("workers", gen.WithWorkers(f.workers))
	if err := cfg.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *flags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (f *flags) run(cmd *cobra.Command, _ []string) error {
	cfg, err := f.configure(cmd.Flags())
	if err != nil {
		return err
	}
	logger := f.logger(cmd)
	generate := func() error {
		_, err := gen.NewGenerator(cfg).WithLogger(logger).Run(cmd.Context())
		return err
	}
	if !f.watch {
		return generate()
	}
	if err := generate(); err != nil {
		logger.Error("initial generation failed; waiting for changes", "error", err)
	}
	return watch(cmd.Context(), cfg.Schema, logger, generate)
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "domaingen",
		Short: "Generate typed query models from a SQL schema",
		Long: `domaingen loads a SQL schema description into a throw-away in-memory
database, inspects the resulting tables and views, writes one Go model file per
table into the output directory, and registers that directory as a compile
source root in the build description.`,
		Example: `  domaingen --schema domain-desc.sql --package com.example.model
  domaingen generate --config domaingen.yml --watch
  domaingen generate --dev-url postgres://localhost:5432/dev?sslmode=disable --package model`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          f.run,
	}
	f.register(root.PersistentFlags())
	root.AddCommand(newGenerateCmd(f), newVersionCmd())
	return root
}

// newGenerateCmd builds the `generate` command.
func newGenerateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the query models (default command)",
		Args:  cobra.NoArgs,
		RunE:  f.run,
	}
}

// newVersionCmd builds the `version` command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("domaingen " + buildVersion())
		},
	}
}
