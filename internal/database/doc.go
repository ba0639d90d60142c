// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package database connects the database modules declared by an application
// and records the models each of them exposes.
//
// A [Module] is any connection that can be named, configured for verbose
// logging, connected and asked for its models. [ConnectAll] connects every
// module concurrently and fails fast: the first failure cancels the shared
// context and is returned wrapped in [ErrConnect]. Successful connections
// register their models in a [Registry], which is written only during the
// connect stage and read-only afterwards.
package database
