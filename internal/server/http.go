package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

// HTTPServer is an HTTP server whose handler can be replaced while serving.
type HTTPServer struct {
	server   *http.Server
	listener net.Listener
	handler  atomic.Pointer[http.Handler]

	logger *logger.Logger
}

// NewHTTPServer returns a server for addr (":3333", "127.0.0.1:0", ...).
func NewHTTPServer(addr string, log *logger.Logger) *HTTPServer {
	h := &HTTPServer{logger: log}
	h.server = &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(h.serveHTTP),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return h
}

func (h *HTTPServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if handler := h.handler.Load(); handler != nil {
		(*handler).ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

// SetHandler publishes handler. Requests accepted afterwards are served by it.
func (h *HTTPServer) SetHandler(handler http.Handler) {
	h.handler.Store(&handler)
}

// Listen implements Server.
func (h *HTTPServer) Listen() error {
	listener, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", ErrListen, h.server.Addr, err)
	}
	h.listener = listener
	h.logger.Info().Str("address", listener.Addr().String()).Msg("HTTP server listening")
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (h *HTTPServer) Addr() net.Addr {
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// RunServer implements Server.
func (h *HTTPServer) RunServer() {
	if h.listener == nil {
		h.logger.Error().Err(errNotListening).Msg("HTTP server Serve")
		return
	}
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msg("HTTP server Serve")
	}
}

// Shutdown implements Server.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	h.logger.Info().Msg("HTTP server Shutdown")
	return nil
}

// Close closes the listener and every connection immediately.
func (h *HTTPServer) Close() error {
	if h.listener != nil {
		_ = h.listener.Close()
	}
	return h.server.Close()
}
