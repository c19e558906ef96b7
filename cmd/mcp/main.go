// Package main starts the read-only craps MCP server on stdio.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/louisbranch/crapshoot/internal/cmd/mcp"
	entrypoint "github.com/louisbranch/crapshoot/internal/platform/cmd"
	"github.com/louisbranch/crapshoot/internal/platform/config"
)

func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	entrypoint.LogPrefix(entrypoint.ServiceMCP)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
