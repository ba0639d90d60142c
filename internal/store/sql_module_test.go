package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bootstrap/internal/config"
	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

const (
	postgresModelsSQL = "SELECT table_name, column_name FROM information_schema.columns"
	sqliteModelsSQL   = "SELECT m.name, p.name FROM sqlite_master AS m JOIN pragma_table_info(m.name) AS p"
)

func newMockOpen(t *testing.T) (OpenFunc, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return func(driverName, dsn string) (*sql.DB, error) {
		return db, nil
	}, mock
}

// compile-time checks
var (
	_ database.Module = (*Postgres)(nil)
	_ database.Module = (*SQLite)(nil)
)

func TestPostgres_Connect(t *testing.T) {
	open, mock := newMockOpen(t)
	p := NewPostgres("main", config.DB{DSN: "postgres://localhost/app"}, open, logger.Nop())
	p.Connection(true)

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(postgresModelsSQL)).
		WithArgs(DefaultPostgresSchema, "goose_db_version").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name"}).
			AddRow("orders", "id").
			AddRow("users", "id").
			AddRow("users", "login"))

	require.NoError(t, p.Connect(context.Background()))

	assert.Equal(t, "main", p.Name())
	assert.Equal(t, map[string]database.Model{
		"orders": {Name: "orders", Columns: []string{"id"}},
		"users":  {Name: "users", Columns: []string{"id", "login"}},
	}, p.Models())
	assert.NotNil(t, p.DB())

	mock.ExpectClose()
	require.NoError(t, p.Close())
	assert.Nil(t, p.DB())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_PingFailureIsClassified(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantIn string
	}{
		{name: "server starting up", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, wantIn: `"classification":"retryable"`},
		{name: "bad password", err: &pgconn.PgError{Code: pgerrcode.InvalidPassword}, wantIn: `"classification":"non-retryable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			open, mock := newMockOpen(t)
			p := NewPostgres("main", config.DB{DSN: "postgres://localhost/app"}, open, logger.New("test", &buf))

			mock.ExpectPing().WillReturnError(tt.err)
			mock.ExpectClose()

			err := p.Connect(context.Background())

			assert.ErrorIs(t, err, ErrPing)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, buf.String(), tt.wantIn)
			assert.Nil(t, p.DB())
			assert.Nil(t, p.Models())
		})
	}
}

func TestPostgres_ConnectFailures(t *testing.T) {
	errOpen := errors.New("unknown driver")

	t.Run("empty dsn", func(t *testing.T) {
		p := NewPostgres("main", config.DB{}, nil, logger.Nop())
		assert.ErrorIs(t, p.Connect(context.Background()), ErrEmptyDSN)
	})

	t.Run("open", func(t *testing.T) {
		p := NewPostgres("main", config.DB{DSN: "x"}, func(string, string) (*sql.DB, error) {
			return nil, errOpen
		}, logger.Nop())
		err := p.Connect(context.Background())
		assert.ErrorIs(t, err, ErrOpen)
		assert.ErrorIs(t, err, errOpen)
	})

	t.Run("models query", func(t *testing.T) {
		open, mock := newMockOpen(t)
		p := NewPostgres("main", config.DB{DSN: "x"}, open, logger.Nop())
		mock.ExpectPing()
		mock.ExpectQuery(regexp.QuoteMeta(postgresModelsSQL)).WillReturnError(errors.New("permission denied"))

		assert.ErrorIs(t, p.Connect(context.Background()), ErrLoadModels)
	})

	t.Run("migrations", func(t *testing.T) {
		open, mock := newMockOpen(t)
		p := NewPostgres("main", config.DB{DSN: "x", RunMigrations: true}, open, logger.Nop())
		mock.ExpectPing()

		assert.ErrorIs(t, p.Connect(context.Background()), ErrMigrate)
	})
}

func TestSQLModule_CloseWithoutConnect(t *testing.T) {
	assert.NoError(t, NewSQLite("local", config.DB{DSN: ":memory:"}, nil, logger.Nop()).Close())
}

func TestSQLite_Connect(t *testing.T) {
	open, mock := newMockOpen(t)
	s := NewSQLite("local", config.DB{DSN: "file::memory:?cache=shared"}, open, logger.Nop())

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(sqliteModelsSQL)).
		WithArgs("table", "sqlite_%", "goose_db_version").
		WillReturnRows(sqlmock.NewRows([]string{"name", "name"}).
			AddRow("app_info", "key").
			AddRow("app_info", "value"))

	require.NoError(t, s.Connect(context.Background()))

	assert.Equal(t, map[string]database.Model{
		"app_info": {Name: "app_info", Columns: []string{"key", "value"}},
	}, s.Models())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLocalDBFileIfNotExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.db")

	require.NoError(t, createLocalDBFileIfNotExists(path+"?_journal=WAL"))
	_, err := os.Stat(path)
	require.NoError(t, err)

	// existing file is kept
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	require.NoError(t, createLocalDBFileIfNotExists(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	require.NoError(t, createLocalDBFileIfNotExists(":memory:"))
	require.NoError(t, createLocalDBFileIfNotExists("file:test.db?mode=memory"))
	_, err = os.Stat("file:test.db?mode=memory")
	assert.True(t, os.IsNotExist(err))
}

func TestModelsQueries(t *testing.T) {
	query, args, err := postgresModelsQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "$1")
	assert.Contains(t, query, "ORDER BY table_name, ordinal_position")
	assert.Equal(t, []any{"public", "goose_db_version"}, args)

	query, args, err = sqliteModelsQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "NOT LIKE ?")
	assert.Contains(t, query, "ORDER BY m.name, p.cid")
	assert.Len(t, args, 3)
}
