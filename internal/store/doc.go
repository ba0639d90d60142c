// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the SQL database modules wired into the bootstrap
// orchestrator: PostgreSQL through the pgx stdlib driver and SQLite through
// mattn/go-sqlite3.
//
// Both modules implement database.Module and io.Closer. Connect opens the
// pool, pings it, optionally applies the embedded goose migrations and then
// enumerates the tables and columns of the database as models. Model
// queries are built with squirrel.
//
// [AppInfo] is a small key/value repository over the app_info table created
// by the first migration.
package store
