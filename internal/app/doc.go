// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the lifecycle controller of a bootstrapped HTTP
// application.
//
// A [Builder] collects the declarative [Module] (databases and route
// groups) together with pipeline settings and plugins. [Builder.Build]
// freezes them into an [App], and [App.Start] runs the startup sequence:
//
//	listen → install middleware → connect databases → mount routes → install fallback
//
// Listening happens synchronously; a bind failure is returned as
// [ErrListen]. Everything after it runs in its own goroutine. A failing
// stage is logged and reported by [Running.Err], and the listener keeps
// answering 404 because no router is ever published.
package app
