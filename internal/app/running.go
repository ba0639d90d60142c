package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/router"
	"github.com/MKhiriev/go-bootstrap/internal/server"
)

// Running is a started application.
type Running struct {
	app      *App
	servers  *server.Servers
	registry *database.Registry
	logger   *logger.Logger

	ready chan struct{}

	mu     sync.RWMutex
	err    error
	mux    chi.Router
	report router.MountReport

	stopping bool
	finished bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// Addr returns the bound HTTP address.
func (r *Running) Addr() net.Addr {
	return r.servers.HTTP.Addr()
}

// Port returns the bound HTTP port.
func (r *Running) Port() int {
	if addr, ok := r.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// HealthAddr returns the bound gRPC health address, or nil when the health
// service is disabled.
func (r *Running) HealthAddr() net.Addr {
	if r.servers.Health == nil {
		return nil
	}
	return r.servers.Health.Addr()
}

// Ready is closed when the startup sequence has finished, successfully or
// not.
func (r *Running) Ready() <-chan struct{} {
	return r.ready
}

// Err returns the error that stopped the startup sequence, if any.
func (r *Running) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Routes returns the published route table. It is empty until the
// sequence succeeds, and stays empty when it fails.
func (r *Running) Routes() []router.RouteInfo {
	r.mu.RLock()
	mux := r.mux
	r.mu.RUnlock()

	if mux == nil {
		return nil
	}
	routes, err := router.Routes(mux)
	if err != nil {
		r.logger.Error().Err(err).Msg("error listing routes")
		return nil
	}
	return routes
}

// Report returns what the mount stage registered and skipped.
func (r *Running) Report() router.MountReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report
}

// Databases returns the registry of connected databases.
func (r *Running) Databases() *database.Registry {
	return r.registry
}

// Shutdown waits for the startup sequence (or ctx), stops the servers and
// closes every database module implementing io.Closer. When ctx expires
// before startup finishes, the router is never published and the startup
// goroutine closes the databases once connecting is over. It is safe to call
// more than once.
func (r *Running) Shutdown(ctx context.Context) error {
	r.shutdownOnce.Do(func() {
		select {
		case <-r.ready:
		case <-ctx.Done():
			r.logger.Warn().Err(ctx.Err()).Msg("shutting down before startup finished")
		}

		r.mu.Lock()
		r.stopping = true
		finished := r.finished
		r.mu.Unlock()

		errs := []error{r.servers.Shutdown(ctx)}
		if finished {
			errs = append(errs, r.closeDatabases())
		}

		r.shutdownErr = errors.Join(errs...)
	})
	return r.shutdownErr
}

func (r *Running) closeDatabases() error {
	var errs []error
	for _, m := range r.app.module.Databases {
		closer, ok := m.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing database %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// finish marks the startup sequence as over. Databases are closed here when
// Shutdown ran before the sequence finished.
func (r *Running) finish() {
	r.mu.Lock()
	r.finished = true
	stopping := r.stopping
	r.mu.Unlock()

	if stopping {
		if err := r.closeDatabases(); err != nil {
			r.logger.Error().Err(err).Msg("error closing databases after startup")
		}
	}
	close(r.ready)
}

func (r *Running) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// publish makes handler live unless Shutdown has already been requested.
func (r *Running) publish(mux chi.Router, handler http.Handler, report router.MountReport) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopping {
		return false
	}
	r.mux = mux
	r.report = report
	r.servers.Publish(handler)
	return true
}
