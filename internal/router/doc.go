// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package router turns statically declared controllers into chi routes.
//
// A [Controller] is built once with [Define] and lists its routes: method,
// path, bound handler method and per-route middlewares. Controllers are
// grouped into a [Group] that adds a mount path, group middlewares and an
// error callback. [Mount] resolves every controller instance through a
// [Resolver], then registers each route on
//
//	MountPath + Prefix + Path
//
// in declaration order. When two groups declare the same method and
// pattern, the first one wins and the later one is logged and skipped.
//
// Handlers return errors instead of writing them. An error travels through
// the group's [ErrorCallback]; whatever the callback returns reaches
// [RespondError], which logs it and answers 500 when nothing was written.
package router
