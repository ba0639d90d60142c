package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-bootstrap/internal/config"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// SQLite is the SQLite database module.
type SQLite struct {
	*sqlModule
}

// NewSQLite returns a SQLite module named name. open may be nil.
func NewSQLite(name string, cfg config.DB, open OpenFunc, log *logger.Logger) *SQLite {
	if open == nil {
		open = sql.Open
	}

	return &SQLite{&sqlModule{
		name:      name,
		driver:    "sqlite3",
		dialect:   goose.DialectSQLite3,
		cfg:       cfg,
		open:      open,
		modelsSQL: sqliteModelsQuery,
		prepare: func() error {
			return createLocalDBFileIfNotExists(cfg.DSN)
		},
		logger: log.Named(name),
	}}
}

// AppInfo returns the app_info repository of the database. Its methods
// return ErrNotConnected until Connect succeeds.
func (s *SQLite) AppInfo() *AppInfo {
	return moduleAppInfo(s.sqlModule, sq.Question)
}

func sqliteModelsQuery() (string, []any, error) {
	return sq.Select("m.name", "p.name").
		From("sqlite_master AS m").
		Join("pragma_table_info(m.name) AS p").
		Where(sq.Eq{"m.type": "table"}).
		Where(sq.NotLike{"m.name": "sqlite_%"}).
		Where(excludeVersionTable("m.name")).
		OrderBy("m.name", "p.cid").
		ToSql()
}

// createLocalDBFileIfNotExists creates the database file and its directory
// for plain file DSNs. In-memory and URI DSNs are left to the driver.
func createLocalDBFileIfNotExists(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	path, _, _ := strings.Cut(dsn, "?")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err = os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("error creating DB directory: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
