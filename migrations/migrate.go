// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL migrations applied by the database
// modules when migrations are enabled.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// VersionTable is the table goose keeps applied versions in.
const VersionTable = "goose_db_version"

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies every pending migration to db using dialect. It uses a
// goose provider per call, so concurrent migrations of different databases
// do not share global goose state.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	provider, err := goose.NewProvider(dialect, db, embedMigrations)
	if err != nil {
		return fmt.Errorf("migration error creating provider for %s: %w", dialect, err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
