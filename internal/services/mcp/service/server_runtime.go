package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	platformgrpc "github.com/louisbranch/crapshoot/internal/platform/grpc"
	"github.com/louisbranch/crapshoot/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// Run dials the craps server and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	conn, err := dialCrapsGRPC(ctx, grpcAddr)
	if err != nil {
		return err
	}
	server, err := newServerForConn(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

func dialCrapsGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	logf := func(format string, args ...any) {
		log.Printf("craps %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, addr, timeouts.GRPCDial, logf, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to craps server at %s: %w", addr, dialErr.Err)
		}
		return nil, err
	}
	return conn, nil
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server and closes the gRPC connection on exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
