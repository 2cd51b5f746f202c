// Package server wires the reservations runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/reservio/internal/platform/config"
	"github.com/louisbranch/reservio/internal/services/reservations/booking"
	"github.com/louisbranch/reservio/internal/services/reservations/lifecycle"
	"github.com/louisbranch/reservio/internal/services/reservations/stats"
	"github.com/louisbranch/reservio/internal/services/reservations/storage/sqlite"
	"github.com/louisbranch/reservio/internal/services/reservations/ticket"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath string `env:"RESERVIO_RESERVATIONS_DB_PATH"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "reservations.db")
	}
	return cfg
}

// Server hosts the reservations engines and storage lifecycle behind a gRPC
// listener with health checks.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *sqlite.Store

	lifecycle *lifecycle.Manager
	booking   *booking.Engine
	tickets   *ticket.Service
	stats     *stats.Service
}

// New creates a configured reservations server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured reservations server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	srvEnv := loadServerEnv()
	store, err := openReservationsStore(srvEnv.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("reservio.reservations", grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		lifecycle:  lifecycle.NewManager(store),
		booking:    booking.NewEngine(store, store),
		tickets:    ticket.NewService(store, store),
		stats:      stats.NewService(store),
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Lifecycle returns the event lifecycle manager.
func (s *Server) Lifecycle() *lifecycle.Manager {
	if s == nil {
		return nil
	}
	return s.lifecycle
}

// Booking returns the registration capacity engine.
func (s *Server) Booking() *booking.Engine {
	if s == nil {
		return nil
	}
	return s.booking
}

// Tickets returns the ticket data service.
func (s *Server) Tickets() *ticket.Service {
	if s == nil {
		return nil
	}
	return s.tickets
}

// Stats returns the admin stats service.
func (s *Server) Stats() *stats.Service {
	if s == nil {
		return nil
	}
	return s.stats
}

// Run creates and serves a reservations server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("reservations server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases reservations server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close reservations store: %v", err)
		}
	}
}

func openReservationsStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reservations sqlite store: %w", err)
	}
	return store, nil
}
