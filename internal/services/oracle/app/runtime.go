// Package app runs the development oracle: it polls the craps service for
// pending rolls and answers them with attested entropy.
package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	platformgrpc "github.com/louisbranch/crapshoot/internal/platform/grpc"
	"github.com/louisbranch/crapshoot/internal/platform/timeouts"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	oracledomain "github.com/louisbranch/crapshoot/internal/services/oracle/domain"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// RuntimeConfig controls oracle startup, dependencies, and loop behavior.
type RuntimeConfig struct {
	Port            int
	CrapsAddr       string
	DeploymentID    string
	PrivateKey      string
	Signer          string
	Program         string
	PollInterval    time.Duration
	GRPCDialTimeout time.Duration
}

const defaultOraclePort = 8096

// Run dials the craps service and answers pending rolls until ctx ends.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.CrapsAddr) == "" {
		return fmt.Errorf("craps address is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultOraclePort
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}
	key, err := oracleauth.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}

	crapsConn, err := platformgrpc.DialWithHealth(
		ctx,
		cfg.CrapsAddr,
		cfg.GRPCDialTimeout,
		log.Printf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		return fmt.Errorf("dial craps service: %w", err)
	}
	defer func() {
		if closeErr := crapsConn.Close(); closeErr != nil {
			log.Printf("close craps connection: %v", closeErr)
		}
	}()

	client := crapsv1.NewCrapsServiceClient(crapsConn)
	deliverer := oracledomain.NewDeliverer(client, oracleauth.SignerConfig{
		Key:      key,
		Identity: oracleauth.Identity{Signer: cfg.Signer, Program: cfg.Program},
	}, nil)
	oracleLoop := New(client, deliverer, Config{
		DeploymentID: cfg.DeploymentID,
		PollInterval: cfg.PollInterval,
	}, log.Printf)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on oracle port %d: %w", cfg.Port, err)
	}
	defer listener.Close()

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("oracle.runtime", grpc_health_v1.HealthCheckResponse_SERVING)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(listener)
	}()
	defer func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		<-serveErr
	}()

	log.Printf("oracle health listening at %v; answering deployment %s as %s", listener.Addr(), cfg.DeploymentID, cfg.Signer)
	return oracleLoop.Run(ctx)
}
