package sql

import (
	"context"
	"errors"
	"testing"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/domaingen/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dialect.Postgres, OpenDB("postgres", db).Dialect())
	assert.Equal(t, dialect.SQLite, OpenDB("sqlite3", db).Dialect())
	assert.Equal(t, "oracle", OpenDB("oracle", db).Dialect())
}

func TestDriverExecBatch(t *testing.T) {
	t.Run("sends the batch unchanged", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		batch := "CREATE TABLE a (id INT);\nCREATE TABLE b (id INT);\n"
		mock.ExpectExec(batch).WillReturnResult(sqlmock.NewResult(0, 0))

		drv := OpenDB(dialect.SQLite, db)
		require.NoError(t, drv.ExecBatch(context.Background(), batch))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps engine errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		engineErr := errors.New("near \"CREAT\": syntax error")
		mock.ExpectExec("CREAT").WillReturnError(engineErr)

		drv := OpenDB(dialect.SQLite, db)
		err = drv.ExecBatch(context.Background(), "CREAT TABLE a (id INT);")
		require.Error(t, err)
		assert.ErrorIs(t, err, engineErr)
		assert.Contains(t, err.Error(), "exec batch")
	})
}

func TestDriverClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	var order []string
	drv := OpenDB(dialect.Postgres, db)
	drv.OnClose(func() error {
		order = append(order, "first")
		return nil
	})
	drv.OnClose(func() error {
		order = append(order, "second")
		return errors.New("drop failed")
	})

	err = drv.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drop failed")
	assert.Equal(t, []string{"second", "first"}, order)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverMetadataUnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = OpenDB("oracle", db).Metadata(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema inspector")
}

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	drv, err := OpenMemory(ctx)
	require.NoError(t, err)

	require.NoError(t, drv.ExecBatch(ctx, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50));\nCREATE TABLE pets (id INT PRIMARY KEY, owner_id INT REFERENCES users(id));\n"))

	insp, err := drv.Metadata(ctx)
	require.NoError(t, err)
	s, err := insp.InspectSchema(ctx, "", &schema.InspectOptions{Mode: schema.InspectTables})
	require.NoError(t, err)
	require.Len(t, s.Tables, 2)
	users, ok := s.Table("users")
	require.True(t, ok)
	require.Len(t, users.Columns, 2)
	assert.Equal(t, "name", users.Columns[1].Name)
	require.NoError(t, drv.Close())
}

func TestOpenMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	first, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.ExecBatch(ctx, "CREATE TABLE users (id INT);"))

	second, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer second.Close()

	insp, err := second.Metadata(ctx)
	require.NoError(t, err)
	s, err := insp.InspectSchema(ctx, "", &schema.InspectOptions{Mode: schema.InspectTables})
	require.NoError(t, err)
	assert.Empty(t, s.Tables, "a fresh handle must start with an empty schema")

	// The same table name is free in the second database.
	require.NoError(t, second.ExecBatch(ctx, "CREATE TABLE users (id INT);"))
}

func TestOpenMemoryDiscardedOnClose(t *testing.T) {
	ctx := context.Background()
	drv, err := OpenMemory(ctx)
	require.NoError(t, err)
	require.NoError(t, drv.ExecBatch(ctx, "CREATE TABLE users (id INT);"))
	require.NoError(t, drv.Close())

	err = drv.ExecBatch(ctx, "SELECT 1")
	require.Error(t, err, "a closed handle cannot be used")
}

func TestOpenMemoryViews(t *testing.T) {
	ctx := context.Background()
	drv, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer drv.Close()
	require.NoError(t, drv.ExecBatch(ctx, `CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50), active BOOLEAN NOT NULL);
CREATE VIEW active_users AS SELECT id, name, upper(name) AS shout FROM users WHERE active;
`))

	insp, err := drv.Metadata(ctx)
	require.NoError(t, err)
	s, err := insp.InspectSchema(ctx, "", &schema.InspectOptions{Mode: schema.InspectTables | schema.InspectViews})
	require.NoError(t, err)
	require.Len(t, s.Tables, 1)
	require.Len(t, s.Views, 1)
	v := s.Views[0]
	assert.Equal(t, "active_users", v.Name)
	assert.Same(t, s, v.Schema)
	require.Len(t, v.Columns, 3)
	assert.Equal(t, "id", v.Columns[0].Name)
	assert.IsType(t, &schema.IntegerType{}, v.Columns[0].Type.Type)
	assert.Equal(t, "name", v.Columns[1].Name)
	assert.IsType(t, &schema.StringType{}, v.Columns[1].Type.Type)
	assert.True(t, v.Columns[1].Type.Null)
	assert.IsType(t, &schema.UnsupportedType{}, v.Columns[2].Type.Type)

	s, err = insp.InspectSchema(ctx, "", &schema.InspectOptions{Mode: schema.InspectTables})
	require.NoError(t, err)
	assert.Empty(t, s.Views, "views are read only when requested")
}

type schemaInspector struct {
	schema.Inspector
	s *schema.Schema
}

func (i schemaInspector) InspectSchema(context.Context, string, *schema.InspectOptions) (*schema.Schema, error) {
	return i.s, nil
}

func TestViewInspectorCatalog(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT table_name FROM information_schema.views WHERE table_schema = $1 ORDER BY table_name").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("recent_orders"))
	mock.ExpectQuery("SELECT column_name, data_type, is_nullable = 'YES' FROM information_schema.columns "+
		"WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position").
		WithArgs("public", "recent_orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "?column?"}).
			AddRow("id", "bigint", false).
			AddRow("placed_at", "timestamp with time zone", true))

	insp := &viewInspector{
		Inspector: schemaInspector{s: schema.New("public")},
		db:        db,
		q:         viewCatalog[dialect.Postgres],
	}
	s, err := insp.InspectSchema(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, s.Views, 1)
	cols := s.Views[0].Columns
	require.Len(t, cols, 2)
	assert.IsType(t, &schema.IntegerType{}, cols[0].Type.Type)
	assert.False(t, cols[0].Type.Null)
	assert.IsType(t, &schema.TimeType{}, cols[1].Type.Type)
	assert.True(t, cols[1].Type.Null)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestViewInspectorCatalogError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("INFORMATION_SCHEMA.VIEWS").WillReturnError(errors.New("access denied"))

	insp := &viewInspector{
		Inspector: schemaInspector{s: schema.New("shop")},
		db:        db,
		q:         viewCatalog[dialect.MySQL],
	}
	_, err = insp.InspectSchema(context.Background(), "", &schema.InspectOptions{Mode: schema.InspectViews})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `inspect views of "shop"`)
}
