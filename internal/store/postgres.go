package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-bootstrap/internal/config"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// DefaultPostgresSchema is the schema whose tables are exposed as models.
const DefaultPostgresSchema = "public"

// Postgres is the PostgreSQL database module.
type Postgres struct {
	*sqlModule
}

// NewPostgres returns a PostgreSQL module named name. open may be nil.
func NewPostgres(name string, cfg config.DB, open OpenFunc, log *logger.Logger) *Postgres {
	if open == nil {
		open = sql.Open
	}

	return &Postgres{&sqlModule{
		name:       name,
		driver:     "pgx",
		dialect:    goose.DialectPostgres,
		cfg:        cfg,
		open:       open,
		modelsSQL:  postgresModelsQuery,
		classifier: NewPostgresErrorClassifier(),
		logger:     log.Named(name),
	}}
}

func postgresModelsQuery() (string, []any, error) {
	return sq.Select("table_name", "column_name").
		From("information_schema.columns").
		Where(sq.Eq{"table_schema": DefaultPostgresSchema}).
		Where(excludeVersionTable("table_name")).
		OrderBy("table_name", "ordinal_position").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// AppInfo returns the app_info repository of the database. Its methods
// return ErrNotConnected until Connect succeeds.
func (p *Postgres) AppInfo() *AppInfo {
	return moduleAppInfo(p.sqlModule, sq.Dollar)
}
