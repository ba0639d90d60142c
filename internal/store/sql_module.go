package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-bootstrap/internal/config"
	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/migrations"
)

// OpenFunc opens a connection pool. sql.Open is used by default.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

// Pool settings applied after opening.
const (
	maxOpenConns    = 10
	maxIdleConns    = 4
	connMaxLifetime = 30 * time.Minute
)

// sqlModule is the driver-independent part of the SQL database modules.
type sqlModule struct {
	name    string
	driver  string
	dialect goose.Dialect
	cfg     config.DB

	open       OpenFunc
	modelsSQL  func() (string, []any, error)
	classifier ErrorClassifier
	prepare    func() error

	logger  *logger.Logger
	verbose bool

	mu     sync.RWMutex
	db     *sql.DB
	models map[string]database.Model
}

// Name implements database.Module.
func (m *sqlModule) Name() string {
	return m.name
}

// Connection implements database.Module. verbose logs every connect step at
// debug level; otherwise only the outcome is logged.
func (m *sqlModule) Connection(verbose bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbose = verbose
}

// Connect implements database.Module.
func (m *sqlModule) Connect(ctx context.Context) error {
	if m.cfg.DSN == "" {
		return ErrEmptyDSN
	}
	if m.prepare != nil {
		if err := m.prepare(); err != nil {
			return m.fail(err, "error preparing database")
		}
	}

	db, err := m.open(m.driver, m.cfg.DSN)
	if err != nil {
		return m.fail(fmt.Errorf("%w: %w", ErrOpen, err), "error occurred during database connection")
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return m.fail(fmt.Errorf("%w: %w", ErrPing, err), "error connecting database (ping)")
	}
	m.debug("database answered ping")

	if m.cfg.RunMigrations {
		if err = migrations.Migrate(ctx, db, m.dialect); err != nil {
			db.Close()
			return m.fail(fmt.Errorf("%w: %w", ErrMigrate, err), "error applying migrations")
		}
		m.debug("migrations applied")
	}

	dbModels, err := m.loadModels(ctx, db)
	if err != nil {
		db.Close()
		return m.fail(err, "error loading models")
	}

	m.mu.Lock()
	m.db = db
	m.models = dbModels
	m.mu.Unlock()

	m.logger.Info().Str("database", m.name).Int("models", len(dbModels)).Msg("connected to database successfully")
	return nil
}

// Models implements database.Module.
func (m *sqlModule) Models() map[string]database.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.models
}

// DB returns the open pool, or nil before a successful Connect.
func (m *sqlModule) DB() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Close closes the pool. Closing a module that never connected is a no-op.
func (m *sqlModule) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	if err != nil {
		return fmt.Errorf("error closing database %s: %w", m.name, err)
	}
	return nil
}

func (m *sqlModule) loadModels(ctx context.Context, db *sql.DB) (map[string]database.Model, error) {
	query, args, err := m.modelsSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	m.debug("loading models", "query", query)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModels, err)
	}
	defer rows.Close()

	dbModels := make(map[string]database.Model)
	for rows.Next() {
		var table, column string
		if err = rows.Scan(&table, &column); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadModels, err)
		}
		model := dbModels[table]
		model.Name = table
		model.Columns = append(model.Columns, column)
		dbModels[table] = model
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModels, err)
	}

	return dbModels, nil
}

func (m *sqlModule) fail(err error, msg string) error {
	event := m.logger.Err(err).Str("database", m.name)
	if m.classifier != nil {
		event = event.Stringer("classification", m.classifier.Classify(err))
	}
	event.Msg(msg)
	return err
}

func (m *sqlModule) debug(msg string, kv ...string) {
	m.mu.RLock()
	verbose := m.verbose
	m.mu.RUnlock()
	if !verbose {
		return
	}

	event := m.logger.Debug().Str("database", m.name)
	for i := 0; i+1 < len(kv); i += 2 {
		event = event.Str(kv[i], kv[i+1])
	}
	event.Msg(msg)
}

// excludeVersionTable hides the goose bookkeeping table from the models.
func excludeVersionTable(column string) sq.Sqlizer {
	return sq.NotEq{column: migrations.VersionTable}
}
