package gen

import (
	"errors"
	"strings"

	"github.com/syssam/domaingen/dialect"
)

// Option configures a generator run.
type Option func(*Config) error

// WithSchema sets the path of the SQL schema description.
func WithSchema(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigurationError("Schema", nil, "schema path cannot be empty", nil)
		}
		c.Schema = path
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigurationError("Target", nil, "target directory cannot be empty", nil)
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the target package name.
// For example: "com.example.model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(pkg) == "" {
			return NewConfigurationError("Package", nil, "package cannot be empty", nil)
		}
		c.Package = pkg
		return nil
	}
}

// WithManifest sets the path of the build description.
func WithManifest(path string) Option {
	return func(c *Config) error {
		c.Manifest = path
		return nil
	}
}

// WithDevURL loads the schema into a scratch database on the server at url
// instead of an in-memory SQLite database.
// Supported schemes: postgres, postgresql, mysql.
func WithDevURL(url string) Option {
	return func(c *Config) error {
		if url != "" {
			scheme, _, ok := strings.Cut(url, "://")
			if !ok || dialect.Normalize(scheme) == "" || dialect.Normalize(scheme) == dialect.SQLite {
				return NewConfigurationError("DevURL", url, "unsupported dev database; use postgres:// or mysql://", nil)
			}
		}
		c.DevURL = url
		return nil
	}
}

// WithTemplate renders models with the text/template stored at path.
func WithTemplate(path string) Option {
	return func(c *Config) error {
		c.Template = path
		return nil
	}
}

// WithWorkers sets the number of files rendered in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigurationError("Workers", n, "workers cannot be negative", nil)
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the default schema and target and the
// given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
