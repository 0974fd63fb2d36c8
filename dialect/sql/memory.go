package sql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/syssam/domaingen/dialect"
)

// MemoryDSN returns the DSN of a named, shared-cache, in-memory SQLite
// database. Connections opened with the same name see the same database.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
}

// OpenMemory provisions a brand-new in-memory SQLite database. The database
// is named with a random UUID, so no two handles ever share state, and one
// connection is pinned for the lifetime of the handle so the database is not
// discarded while the pool is idle. Closing the handle discards it.
func OpenMemory(ctx context.Context) (*Driver, error) {
	name := "domaingen-" + uuid.NewString()
	drv, err := Open(dialect.SQLite, MemoryDSN(name))
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open in-memory sqlite: %w", err)
	}
	keep, err := drv.DB().Conn(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("dialect/sql: connect in-memory sqlite: %w", err), drv.Close())
	}
	drv.keep = keep
	if err := keep.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("dialect/sql: ping in-memory sqlite: %w", err), drv.Close())
	}
	return drv, nil
}
