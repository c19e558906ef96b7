// Package main starts the development oracle worker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	oraclecmd "github.com/louisbranch/crapshoot/internal/cmd/oracle"
	entrypoint "github.com/louisbranch/crapshoot/internal/platform/cmd"
	"github.com/louisbranch/crapshoot/internal/platform/config"
)

func main() {
	cfg, err := oraclecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	entrypoint.LogPrefix(entrypoint.ServiceOracle)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := oraclecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("oracle stopped: %v", err)
	}
}
