package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/domaingen/dialect"
)

// Driver is a handle to an ephemeral database. It owns the underlying pool,
// an optional pinned connection that keeps in-memory databases alive, and the
// cleanup hooks that discard the database when the handle is closed.
type Driver struct {
	Conn
	dialect string
	db      *sql.DB
	keep    *sql.Conn
	cleanup []func() error
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	drv := &Driver{dialect: dialect, Conn: c}
	if db, ok := c.ExecQuerier.(*sql.DB); ok {
		drv.db = db
	}
	return drv
}

// Open wraps the database/sql.Open method and returns a Driver.
func Open(dialect, source string) (*Driver, error) {
	db, err := sqlOpen(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialect, Conn{db, dialect}), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// sqlOpen is replaced in tests.
var sqlOpen = sql.Open

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// Dialect returns the dialect of the database behind the handle.
func (d *Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// ExecBatch executes the given text as one batch of SQL statements. The
// statements are sent to the engine unchanged; splitting, if any, is left to
// the engine.
func (d *Driver) ExecBatch(ctx context.Context, batch string) error {
	if _, err := d.ExecContext(ctx, batch); err != nil {
		return fmt.Errorf("dialect/sql: exec batch: %w", err)
	}
	return nil
}

// Metadata returns the schema inspector for the live database. Views are
// included in inspected schemas.
func (d *Driver) Metadata(_ context.Context) (schema.Inspector, error) {
	var (
		drv schema.Inspector
		err error
	)
	switch d.Dialect() {
	case dialect.SQLite:
		drv, err = sqlite.Open(d.ExecQuerier)
	case dialect.Postgres:
		drv, err = postgres.Open(d.ExecQuerier)
	case dialect.MySQL:
		drv, err = mysql.Open(d.ExecQuerier)
	default:
		return nil, fmt.Errorf("dialect/sql: no schema inspector for dialect %q", d.dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s inspector: %w", d.Dialect(), err)
	}
	return &viewInspector{Inspector: drv, db: d.ExecQuerier, q: viewCatalog[d.Dialect()]}, nil
}

// OnClose registers fn to run after the pool is closed. Hooks run in reverse
// registration order.
func (d *Driver) OnClose(fn func() error) {
	d.cleanup = append(d.cleanup, fn)
}

// Close releases the pinned connection, closes the pool and runs the
// registered cleanup hooks. All errors are returned joined.
func (d *Driver) Close() error {
	var errs []error
	if d.keep != nil {
		errs = append(errs, d.keep.Close())
		d.keep = nil
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	for i := len(d.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, d.cleanup[i]())
	}
	d.cleanup = nil
	return errors.Join(errs...)
}

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn binds an ExecQuerier to a dialect.
type Conn struct {
	ExecQuerier
	dialect string
}
