// Package oracle parses development oracle flags and launches the worker.
package oracle

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/crapshoot/internal/platform/cmd"
	oracleapp "github.com/louisbranch/crapshoot/internal/services/oracle/app"
)

// Config holds oracle command configuration.
type Config struct {
	Port            int           `env:"CRAPSHOOT_ORACLE_PORT" envDefault:"8096"`
	CrapsAddr       string        `env:"CRAPSHOOT_ADDR" envDefault:"localhost:8095"`
	DeploymentID    string        `env:"CRAPSHOOT_DEPLOYMENT_ID"`
	PrivateKey      string        `env:"CRAPSHOOT_ORACLE_PRIVATE_KEY"`
	Signer          string        `env:"CRAPSHOOT_ORACLE_SIGNER" envDefault:"dev-oracle"`
	Program         string        `env:"CRAPSHOOT_ORACLE_PROGRAM" envDefault:"dev-vrf"`
	PollInterval    time.Duration `env:"CRAPSHOOT_ORACLE_POLL_INTERVAL" envDefault:"2s"`
	GRPCDialTimeout time.Duration `env:"CRAPSHOOT_ORACLE_DIAL_TIMEOUT" envDefault:"2s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, nil); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The oracle health gRPC server port")
	fs.StringVar(&cfg.CrapsAddr, "craps-addr", cfg.CrapsAddr, "The craps gRPC server address")
	fs.StringVar(&cfg.DeploymentID, "deployment", cfg.DeploymentID, "The deployment whose rolls to answer")
	fs.StringVar(&cfg.Signer, "signer", cfg.Signer, "Oracle signer identity (attestation issuer)")
	fs.StringVar(&cfg.Program, "program", cfg.Program, "Oracle program identity (attestation audience)")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Pending roll poll interval")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "gRPC dependency dial timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the oracle runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceOracle, func(context.Context) error {
		return oracleapp.Run(ctx, oracleapp.RuntimeConfig{
			Port:            cfg.Port,
			CrapsAddr:       cfg.CrapsAddr,
			DeploymentID:    cfg.DeploymentID,
			PrivateKey:      cfg.PrivateKey,
			Signer:          cfg.Signer,
			Program:         cfg.Program,
			PollInterval:    cfg.PollInterval,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
		})
	})
}
