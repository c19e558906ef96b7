// Package cmd holds the startup plumbing shared by every binary under cmd/.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/crapshoot/internal/platform/config"
	"github.com/louisbranch/crapshoot/internal/platform/otel"
	"github.com/louisbranch/crapshoot/internal/platform/timeouts"
)

// Service identifiers used for telemetry resource names and log prefixes.
const (
	ServiceCraps  = "craps"
	ServiceOracle = "oracle"
	ServiceMCP    = "mcp"
)

// ParseConfig loads environment defaults into cfg. A nil environment reads the
// process environment.
func ParseConfig[T any](cfg *T, environment map[string]string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnvFrom(cfg, environment)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// LogPrefix configures the standard logger for a service binary.
func LogPrefix(service string) {
	log.SetPrefix("[" + strings.ToUpper(strings.TrimSpace(service)) + "] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// RunWithTelemetry configures tracing and executes a service run loop,
// flushing spans on return.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
