package app

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/di"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/router"
	"github.com/MKhiriev/go-bootstrap/internal/server"
)

// App is a built, immutable application configuration.
type App struct {
	module     Module
	logger     *logger.Logger
	production bool
	plugins    []middleware.Middleware
	pipeline   middleware.Pipeline
	healthAddr string
	resolver   router.Resolver
}

// ProductionMode reports whether the app runs in production mode.
func (a *App) ProductionMode() bool {
	return a.production
}

// Start binds ":<port>" and launches the startup sequence in the
// background. Port 0 picks a free port; see Running.Port.
//
// Only a listen failure is returned. Failures of later stages are logged
// and reported by Running.Err once Running.Ready is closed.
//
// Cancelling ctx does not abort a startup in progress.
func (a *App) Start(ctx context.Context, port int) (*Running, error) {
	log := a.logger
	if a.production {
		log = log.Leveled(zerolog.InfoLevel)
	}

	servers := server.NewServers(fmt.Sprintf(":%d", port), a.healthAddr, log)
	if err := servers.Listen(); err != nil {
		log.Error().Err(err).Int("port", port).Msg("error starting listener")
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}
	servers.RunServer()

	registry := database.NewRegistry()
	resolver := a.resolver
	if resolver == nil {
		resolver = di.NewContainer(registry, log)
	}

	r := &Running{
		app:      a,
		servers:  servers,
		registry: registry,
		logger:   log,
		ready:    make(chan struct{}),
	}

	go r.startup(context.WithoutCancel(ctx), resolver)

	return r, nil
}

// startup runs install → connect → mount → fallback → publish.
func (r *Running) startup(ctx context.Context, resolver router.Resolver) {
	a := r.app
	log := r.logger

	defer r.finish()
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%w: %v", ErrStartupPanic, rec)
			log.Error().Err(err).Bytes("stack", debug.Stack()).Msg("recovered from panic during startup")
			r.setErr(err)
		}
	}()

	// The middleware stack wraps the mux instead of being registered with
	// mux.Use: chi skips Use middlewares on a router without routes.
	mux := chi.NewRouter()
	stack := append([]middleware.Middleware{middleware.Recover(log)}, a.plugins...)
	handler := middleware.Chain(stack...)(a.pipeline.Wrap(mux, log, a.production))
	log.Debug().Int("plugins", len(a.plugins)).Bool("production", a.production).Msg("middleware installed")

	if err := database.ConnectAll(ctx, a.module.Databases, !a.production, r.registry); err != nil {
		log.Error().Err(err).Msg("error connecting databases, routes are not mounted")
		r.setErr(err)
		return
	}
	log.Debug().Strs("databases", r.registry.Names()).Msg("databases connected")

	report, err := router.Mount(ctx, mux, a.module.Routes, resolver, log)
	if err != nil {
		log.Error().Err(err).Msg("error mounting routes")
		r.setErr(err)
		return
	}

	mux.NotFound(middleware.Fallback)
	mux.MethodNotAllowed(middleware.Fallback)

	if !r.publish(mux, handler, report) {
		log.Warn().Msg("shutdown requested during startup, router is not published")
		return
	}
	log.Info().
		Int("routes", len(report.Routes)).
		Int("skipped", len(report.Skipped)).
		Str("address", r.servers.HTTP.Addr().String()).
		Msg("application started")
}
