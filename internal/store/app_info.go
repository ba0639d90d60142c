package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const appInfoTable = "app_info"

// Querier is the part of *sql.DB used by repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AppInfo is a key/value repository over the app_info table.
type AppInfo struct {
	conn        func() Querier
	placeholder sq.PlaceholderFormat
}

// NewAppInfo returns an AppInfo over db building queries with placeholder
// (sq.Dollar for PostgreSQL, sq.Question for SQLite).
func NewAppInfo(db Querier, placeholder sq.PlaceholderFormat) *AppInfo {
	return &AppInfo{conn: func() Querier { return db }, placeholder: placeholder}
}

// moduleAppInfo returns an AppInfo that looks up the pool of m on every call,
// so it can be created before m connects.
func moduleAppInfo(m *sqlModule, placeholder sq.PlaceholderFormat) *AppInfo {
	return &AppInfo{
		conn: func() Querier {
			if db := m.DB(); db != nil {
				return db
			}
			return nil
		},
		placeholder: placeholder,
	}
}

// Put inserts or replaces the value stored under key.
func (a *AppInfo) Put(ctx context.Context, key, value string) error {
	db := a.conn()
	if db == nil {
		return ErrNotConnected
	}

	query, args, err := sq.Insert(appInfoTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value").
		PlaceholderFormat(a.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error saving app info %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key or ErrNotFound.
func (a *AppInfo) Get(ctx context.Context, key string) (string, error) {
	db := a.conn()
	if db == nil {
		return "", ErrNotConnected
	}

	query, args, err := sq.Select("value").
		From(appInfoTable).
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(a.placeholder).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: app info %q", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("error reading app info %q: %w", key, err)
	}
	return value, nil
}

// All returns every stored key/value pair.
func (a *AppInfo) All(ctx context.Context) (map[string]string, error) {
	db := a.conn()
	if db == nil {
		return nil, ErrNotConnected
	}

	query, args, err := sq.Select("key", "value").
		From(appInfoTable).
		OrderBy("key").
		PlaceholderFormat(a.placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error reading app info: %w", err)
	}
	defer rows.Close()

	info := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("error scanning app info: %w", err)
		}
		info[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading app info: %w", err)
	}
	return info, nil
}
