package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// Servers groups the HTTP server and the optional health server.
type Servers struct {
	HTTP   *HTTPServer
	Health *HealthServer

	logger *logger.Logger
}

// NewServers creates the HTTP server for httpAddr and, when healthAddr is not
// empty, the gRPC health server.
func NewServers(httpAddr, healthAddr string, log *logger.Logger) *Servers {
	log.Info().Msg("creating new server...")
	s := &Servers{
		HTTP:   NewHTTPServer(httpAddr, log),
		logger: log,
	}
	if healthAddr != "" {
		s.Health = NewHealthServer(healthAddr, log)
	}
	return s
}

// Listen binds every server. When one fails, those already bound are closed
// and the error is returned.
func (s *Servers) Listen() error {
	if err := s.HTTP.Listen(); err != nil {
		_ = s.HTTP.Close()
		return err
	}

	if s.Health != nil {
		if err := s.Health.Listen(); err != nil {
			_ = s.HTTP.Close()
			return err
		}
	}

	return nil
}

// RunServer launches all bound servers in their own goroutines.
func (s *Servers) RunServer() {
	s.logger.Info().Msg("Launching HTTP server")
	go s.HTTP.RunServer()

	if s.Health != nil {
		s.logger.Info().Msg("Launching GRPC server")
		go s.Health.RunServer()
	}
}

// Publish makes handler serve HTTP requests and marks the health service
// SERVING.
func (s *Servers) Publish(handler http.Handler) {
	s.HTTP.SetHandler(handler)
	if s.Health != nil {
		s.Health.SetServing(true)
	}
}

// Shutdown gracefully stops every server.
func (s *Servers) Shutdown(ctx context.Context) error {
	var errs []error

	// finish HTTP server
	if err := s.HTTP.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	// finish gRPC server
	if s.Health != nil {
		if err := s.Health.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
