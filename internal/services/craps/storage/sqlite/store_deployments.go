package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

// GetDeployment returns one deployment record.
func (s *Store) GetDeployment(ctx context.Context, deploymentID string) (deployment.State, error) {
	if err := s.ready(ctx); err != nil {
		return deployment.State{}, err
	}
	return getDeployment(ctx, s.sqlDB, deploymentID)
}

func (t *tx) GetDeployment(ctx context.Context, deploymentID string) (deployment.State, error) {
	return getDeployment(ctx, t.q, deploymentID)
}

func (t *tx) PutDeployment(ctx context.Context, state deployment.State) error {
	deploymentID := strings.TrimSpace(state.DeploymentID)
	if deploymentID == "" {
		return fmt.Errorf("deployment id is required")
	}
	cfg := state.Config
	_, err := t.q.ExecContext(
		ctx,
		`INSERT INTO deployments (
		   deployment_id, authority, oracle_program, oracle_signer, treasury,
		   tax_bps, join_timeout_ticks, roll_timeout_ticks, max_faders,
		   max_roll_retries, frozen
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (deployment_id) DO UPDATE SET
		   authority = excluded.authority,
		   oracle_program = excluded.oracle_program,
		   oracle_signer = excluded.oracle_signer,
		   treasury = excluded.treasury,
		   tax_bps = excluded.tax_bps,
		   join_timeout_ticks = excluded.join_timeout_ticks,
		   roll_timeout_ticks = excluded.roll_timeout_ticks,
		   max_faders = excluded.max_faders,
		   max_roll_retries = excluded.max_roll_retries,
		   frozen = excluded.frozen`,
		deploymentID,
		cfg.Authority,
		cfg.OracleProgram,
		cfg.OracleSigner,
		cfg.Treasury,
		cfg.TaxBps,
		toInt64(cfg.JoinTimeoutTicks),
		toInt64(cfg.RollTimeoutTicks),
		cfg.MaxFaders,
		cfg.MaxRollRetries,
		boolInt(cfg.Frozen),
	)
	if err != nil {
		return fmt.Errorf("put deployment: %w", err)
	}
	return nil
}

func getDeployment(ctx context.Context, q queryer, deploymentID string) (deployment.State, error) {
	deploymentID = strings.TrimSpace(deploymentID)
	if deploymentID == "" {
		return deployment.State{}, fmt.Errorf("deployment id is required")
	}
	row := q.QueryRowContext(
		ctx,
		`SELECT authority, oracle_program, oracle_signer, treasury, tax_bps,
		        join_timeout_ticks, roll_timeout_ticks, max_faders,
		        max_roll_retries, frozen
		   FROM deployments
		  WHERE deployment_id = ?`,
		deploymentID,
	)
	var (
		cfg         deployment.Config
		joinTimeout int64
		rollTimeout int64
		frozen      int
	)
	err := row.Scan(
		&cfg.Authority,
		&cfg.OracleProgram,
		&cfg.OracleSigner,
		&cfg.Treasury,
		&cfg.TaxBps,
		&joinTimeout,
		&rollTimeout,
		&cfg.MaxFaders,
		&cfg.MaxRollRetries,
		&frozen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return deployment.State{}, storage.ErrNotFound
		}
		return deployment.State{}, fmt.Errorf("get deployment: %w", err)
	}
	cfg.JoinTimeoutTicks = fromInt64(joinTimeout)
	cfg.RollTimeoutTicks = fromInt64(rollTimeout)
	cfg.Frozen = frozen != 0
	return deployment.State{DeploymentID: deploymentID, Initialized: true, Config: cfg}, nil
}
