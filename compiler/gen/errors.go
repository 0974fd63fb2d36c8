package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds of a generator run.
var (
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("domaingen: invalid configuration")
	// ErrProvisioning indicates that the ephemeral database could not be created.
	ErrProvisioning = errors.New("domaingen: provisioning failed")
	// ErrSchemaLoad indicates that the schema file could not be read.
	ErrSchemaLoad = errors.New("domaingen: schema load failed")
	// ErrSchemaExecution indicates that the database rejected the schema.
	ErrSchemaExecution = errors.New("domaingen: schema execution failed")
	// ErrExport indicates an exporter failure.
	ErrExport = errors.New("domaingen: export failed")
	// ErrRegistration indicates that the output directory could not be
	// registered with the build description.
	ErrRegistration = errors.New("domaingen: registration failed")
)

// ConfigurationError represents an invalid or missing configuration value.
type ConfigurationError struct {
	Option  string // Schema, Target, Package, ...
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("domaingen: configuration error")
	if e.Option != "" {
		fmt.Fprintf(&b, " for %q", e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(option string, value any, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Option:  option,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}

// ProvisioningError represents a failure to create the ephemeral database.
type ProvisioningError struct {
	Provisioner string
	Cause       error
}

// Error implements the error interface.
func (e *ProvisioningError) Error() string {
	var b strings.Builder
	b.WriteString("domaingen: provisioning error")
	if e.Provisioner != "" {
		b.WriteString(" (")
		b.WriteString(e.Provisioner)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ProvisioningError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ProvisioningError.
func (e *ProvisioningError) Is(target error) bool {
	return target == ErrProvisioning
}

// NewProvisioningError creates a new ProvisioningError.
func NewProvisioningError(provisioner string, cause error) *ProvisioningError {
	return &ProvisioningError{Provisioner: provisioner, Cause: cause}
}

// SchemaLoadError represents an unreadable schema file.
type SchemaLoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *SchemaLoadError) Error() string {
	msg := fmt.Sprintf("domaingen: schema load error on %s", e.Path)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaLoadError.
func (e *SchemaLoadError) Is(target error) bool {
	return target == ErrSchemaLoad
}

// NewSchemaLoadError creates a new SchemaLoadError.
func NewSchemaLoadError(path string, cause error) *SchemaLoadError {
	return &SchemaLoadError{Path: path, Cause: cause}
}

// SchemaExecutionError represents a schema batch rejected by the database.
// The engine diagnostic is kept as the cause.
type SchemaExecutionError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *SchemaExecutionError) Error() string {
	msg := fmt.Sprintf("domaingen: schema execution error on %s", e.Path)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SchemaExecutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaExecutionError.
func (e *SchemaExecutionError) Is(target error) bool {
	return target == ErrSchemaExecution
}

// NewSchemaExecutionError creates a new SchemaExecutionError.
func NewSchemaExecutionError(path string, cause error) *SchemaExecutionError {
	return &SchemaExecutionError{Path: path, Cause: cause}
}

// ExportError represents a metadata exporter failure.
type ExportError struct {
	Package string
	Dir     string
	Cause   error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	var b strings.Builder
	b.WriteString("domaingen: export error")
	if e.Package != "" {
		fmt.Fprintf(&b, " for package %s", e.Package)
	}
	if e.Dir != "" {
		fmt.Fprintf(&b, " (dir: %s)", e.Dir)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ExportError.
func (e *ExportError) Is(target error) bool {
	return target == ErrExport
}

// NewExportError creates a new ExportError.
func NewExportError(pkg, dir string, cause error) *ExportError {
	return &ExportError{Package: pkg, Dir: dir, Cause: cause}
}

// RegistrationError represents a failure to register a compile source root.
type RegistrationError struct {
	Root  string
	Cause error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	msg := fmt.Sprintf("domaingen: registration error for %s", e.Root)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RegistrationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RegistrationError.
func (e *RegistrationError) Is(target error) bool {
	return target == ErrRegistration
}

// NewRegistrationError creates a new RegistrationError.
func NewRegistrationError(root string, cause error) *RegistrationError {
	return &RegistrationError{Root: root, Cause: cause}
}

// IsConfigurationError reports whether the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsProvisioningError reports whether the error is a ProvisioningError.
func IsProvisioningError(err error) bool {
	var provErr *ProvisioningError
	return errors.As(err, &provErr)
}

// IsSchemaLoadError reports whether the error is a SchemaLoadError.
func IsSchemaLoadError(err error) bool {
	var loadErr *SchemaLoadError
	return errors.As(err, &loadErr)
}

// IsSchemaExecutionError reports whether the error is a SchemaExecutionError.
func IsSchemaExecutionError(err error) bool {
	var execErr *SchemaExecutionError
	return errors.As(err, &execErr)
}

// IsExportError reports whether the error is an ExportError.
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}

// IsRegistrationError reports whether the error is a RegistrationError.
func IsRegistrationError(err error) bool {
	var regErr *RegistrationError
	return errors.As(err, &regErr)
}
