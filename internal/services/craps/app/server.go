// Package server wires the craps runtime and gRPC lifecycle.
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
	"time"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/config"
	"github.com/louisbranch/crapshoot/internal/platform/id"
	crapsservice "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/craps"
	"github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	crapssqlite "github.com/louisbranch/crapshoot/internal/services/craps/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath          string   `env:"CRAPSHOOT_DB_PATH"`
	OraclePublicKey string   `env:"CRAPSHOOT_ORACLE_PUBLIC_KEY"`
	OracleIssuers   []string `env:"CRAPSHOOT_ORACLE_ISSUER_ALLOWLIST" envSeparator:","`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "crapshoot.db")
	}
	return cfg
}

// Server hosts the craps gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *crapssqlite.Store
}

// New creates a configured craps server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured craps server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	env := loadServerEnv()
	verifier, err := verifierConfig(env)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	store, err := openCrapsStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	handler, err := engine.NewHandler(store, &engine.MonotonicClock{Source: engine.UnixClock(time.Now)})
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("build engine: %w", err)
	}
	apiService, err := crapsservice.NewService(handler, crapsservice.StoresFrom(store), verifier)
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("build craps service: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(id.NewID),
			interceptors.AuditInterceptor(log.Default()),
		),
	)
	healthServer := health.NewServer()
	crapsv1.RegisterCrapsServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(crapsv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a craps server until context cancellation.
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

	log.Printf("craps server listening at %v", s.listener.Addr())
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

// Close releases craps server resources.
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
			log.Printf("close craps store: %v", err)
		}
	}
}

// verifierConfig decodes the oracle public key. Without a key the server
// still serves every call except ConsumeRandomness.
func verifierConfig(env serverEnv) (oracleauth.VerifierConfig, error) {
	cfg := oracleauth.VerifierConfig{}
	for _, issuer := range env.OracleIssuers {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			cfg.Issuers = append(cfg.Issuers, issuer)
		}
	}
	if strings.TrimSpace(env.OraclePublicKey) == "" {
		log.Printf("oracle public key not configured; randomness deliveries will be refused")
		return cfg, nil
	}
	key, err := oracleauth.ParsePublicKey(env.OraclePublicKey)
	if err != nil {
		return oracleauth.VerifierConfig{}, fmt.Errorf("parse oracle public key: %w", err)
	}
	cfg.Key = key
	return cfg, nil
}

func openCrapsStore(path string) (*crapssqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := crapssqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open craps sqlite store: %w", err)
	}
	return store, nil
}
