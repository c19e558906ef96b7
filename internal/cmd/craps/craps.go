// Package craps parses craps service flags and launches the service.
package craps

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/crapshoot/internal/platform/cmd"
	server "github.com/louisbranch/crapshoot/internal/services/craps/app"
)

// Config holds craps command configuration.
type Config struct {
	Port int `env:"CRAPSHOOT_PORT" envDefault:"8095"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, nil); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The craps gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the craps gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCraps, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
