package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// HealthServer serves the gRPC health checking protocol.
type HealthServer struct {
	addr     string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener

	logger *logger.Logger
}

// NewHealthServer returns a health server for addr reporting NOT_SERVING.
func NewHealthServer(addr string, log *logger.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	server := grpc.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	return &HealthServer{
		addr:   addr,
		server: server,
		health: hs,
		logger: log,
	}
}

// SetServing switches the overall status between SERVING and NOT_SERVING.
func (g *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus("", status)
	g.logger.Info().Str("status", status.String()).Msg("health status changed")
}

// Listen implements Server.
func (g *HealthServer) Listen() error {
	listener, err := net.Listen("tcp", g.addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", ErrListen, g.addr, err)
	}
	g.listener = listener
	g.logger.Info().Str("address", listener.Addr().String()).Msg("gRPC health server listening")
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (g *HealthServer) Addr() net.Addr {
	if g.listener == nil {
		return nil
	}
	return g.listener.Addr()
}

// RunServer implements Server.
func (g *HealthServer) RunServer() {
	if g.listener == nil {
		g.logger.Error().Err(errNotListening).Msg("gRPC server Serve")
		return
	}
	if err := g.server.Serve(g.listener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

// Shutdown implements Server. Watchers are told NOT_SERVING before the
// server stops; ctx expiry forces the stop.
func (g *HealthServer) Shutdown(ctx context.Context) error {
	g.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
	}

	g.logger.Info().Msg("gRPC server Shutdown")
	return nil
}
