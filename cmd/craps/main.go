// Package main starts the craps gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	crapscmd "github.com/louisbranch/crapshoot/internal/cmd/craps"
	entrypoint "github.com/louisbranch/crapshoot/internal/platform/cmd"
	"github.com/louisbranch/crapshoot/internal/platform/config"
)

func main() {
	cfg, err := crapscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	entrypoint.LogPrefix(entrypoint.ServiceCraps)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := crapscmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
