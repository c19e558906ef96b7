package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

const (
	defaultGamePageSize = 10
	maxGamePageSize     = 50
)

const gameColumns = `deployment_id, game_id, shooter, phase, shooter_stake,
		        total_fader_stake, total_pot, tax_amount, point,
		        winner_is_shooter, forfeited, pending_roll_token,
		        last_consumed_token, last_roll_tick, last_action_tick,
		        last_callback_tick, roll_retries, last_die1, last_die2,
		        fader_capacity, shooter_payout, shooter_claimed, closed,
		        created_at, updated_at`

// GetGame returns one game that has not been closed.
func (s *Store) GetGame(ctx context.Context, deploymentID, gameID string) (game.State, error) {
	if err := s.ready(ctx); err != nil {
		return game.State{}, err
	}
	state, err := getGame(ctx, s.sqlDB, deploymentID, gameID)
	if err != nil {
		return game.State{}, err
	}
	if state.Closed {
		return game.State{}, storage.ErrNotFound
	}
	return state, nil
}

// ListGames returns one page of games that have not been closed, ordered by
// game id.
func (s *Store) ListGames(ctx context.Context, query storage.ListGamesQuery) (storage.GamePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.GamePage{}, err
	}
	deploymentID := strings.TrimSpace(query.DeploymentID)
	if deploymentID == "" {
		return storage.GamePage{}, fmt.Errorf("deployment id is required")
	}
	pageSize := query.PageSize
	switch {
	case pageSize <= 0:
		pageSize = defaultGamePageSize
	case pageSize > maxGamePageSize:
		pageSize = maxGamePageSize
	}

	clauses := []string{"deployment_id = ?", "closed = 0"}
	args := []any{deploymentID}
	if token := strings.TrimSpace(query.PageToken); token != "" {
		clauses = append(clauses, "game_id > ?")
		args = append(args, token)
	}
	if where := strings.TrimSpace(query.Where); where != "" {
		clauses = append(clauses, "("+where+")")
		args = append(args, query.Args...)
	}
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+gameColumns+`
		   FROM games
		  WHERE `+strings.Join(clauses, " AND ")+`
		  ORDER BY game_id ASC
		  LIMIT ?`,
		args...,
	)
	if err != nil {
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	var games []game.State
	for rows.Next() {
		state, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return storage.GamePage{}, fmt.Errorf("list games: %w", err)
		}
		games = append(games, state)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	rows.Close()

	page := storage.GamePage{}
	if len(games) > pageSize {
		games = games[:pageSize]
		page.NextPageToken = games[pageSize-1].GameID
	}
	for i := range games {
		if err := loadFaders(ctx, s.sqlDB, &games[i]); err != nil {
			return storage.GamePage{}, err
		}
	}
	page.Games = games
	return page, nil
}

func (t *tx) GetGame(ctx context.Context, deploymentID, gameID string) (game.State, error) {
	return getGame(ctx, t.q, deploymentID, gameID)
}

// PutGame upserts the game row and rewrites its fader slots. A closed game
// keeps only its row as a tombstone.
func (t *tx) PutGame(ctx context.Context, state game.State) error {
	if strings.TrimSpace(state.DeploymentID) == "" || strings.TrimSpace(state.GameID) == "" {
		return fmt.Errorf("deployment id and game id are required")
	}
	_, err := t.q.ExecContext(
		ctx,
		`INSERT INTO games (`+gameColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (deployment_id, game_id) DO UPDATE SET
		   shooter = excluded.shooter,
		   phase = excluded.phase,
		   shooter_stake = excluded.shooter_stake,
		   total_fader_stake = excluded.total_fader_stake,
		   total_pot = excluded.total_pot,
		   tax_amount = excluded.tax_amount,
		   point = excluded.point,
		   winner_is_shooter = excluded.winner_is_shooter,
		   forfeited = excluded.forfeited,
		   pending_roll_token = excluded.pending_roll_token,
		   last_consumed_token = excluded.last_consumed_token,
		   last_roll_tick = excluded.last_roll_tick,
		   last_action_tick = excluded.last_action_tick,
		   last_callback_tick = excluded.last_callback_tick,
		   roll_retries = excluded.roll_retries,
		   last_die1 = excluded.last_die1,
		   last_die2 = excluded.last_die2,
		   fader_capacity = excluded.fader_capacity,
		   shooter_payout = excluded.shooter_payout,
		   shooter_claimed = excluded.shooter_claimed,
		   closed = excluded.closed,
		   updated_at = excluded.updated_at`,
		state.DeploymentID,
		state.GameID,
		state.Shooter,
		state.Phase.String(),
		toInt64(state.ShooterStake),
		toInt64(state.TotalFaderStake),
		toInt64(state.TotalPot),
		toInt64(state.TaxAmount),
		state.Point,
		boolInt(state.WinnerIsShooter),
		boolInt(state.Forfeited),
		state.PendingRollToken,
		state.LastConsumedToken,
		toInt64(state.LastRollTick),
		toInt64(state.LastActionTick),
		toInt64(state.LastCallbackTick),
		state.RollRetries,
		state.LastDie1,
		state.LastDie2,
		state.Faders.Capacity(),
		toInt64(state.ShooterPayout),
		boolInt(state.ShooterClaimed),
		boolInt(state.Closed),
		toMillis(state.CreatedAt),
		toMillis(state.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put game: %w", err)
	}

	if _, err := t.q.ExecContext(ctx,
		`DELETE FROM game_faders WHERE deployment_id = ? AND game_id = ?`,
		state.DeploymentID, state.GameID,
	); err != nil {
		return fmt.Errorf("clear faders: %w", err)
	}
	if state.Closed {
		return nil
	}
	for slot, f := range state.Faders.All() {
		if _, err := t.q.ExecContext(ctx,
			`INSERT INTO game_faders (deployment_id, game_id, slot, fader_id, stake, payout, claimed)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			state.DeploymentID, state.GameID, slot, f.ID,
			toInt64(f.Stake), toInt64(f.Payout), boolInt(f.Claimed),
		); err != nil {
			if isConstraintError(err) {
				return fmt.Errorf("put fader %s: %w", f.ID, storage.ErrAlreadyExists)
			}
			return fmt.Errorf("put fader %s: %w", f.ID, err)
		}
	}
	return nil
}

func getGame(ctx context.Context, q queryer, deploymentID, gameID string) (game.State, error) {
	deploymentID = strings.TrimSpace(deploymentID)
	gameID = strings.TrimSpace(gameID)
	if deploymentID == "" || gameID == "" {
		return game.State{}, fmt.Errorf("deployment id and game id are required")
	}
	row := q.QueryRowContext(
		ctx,
		`SELECT `+gameColumns+`
		   FROM games
		  WHERE deployment_id = ? AND game_id = ?`,
		deploymentID, gameID,
	)
	state, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.State{}, storage.ErrNotFound
		}
		return game.State{}, fmt.Errorf("get game: %w", err)
	}
	if err := loadFaders(ctx, q, &state); err != nil {
		return game.State{}, err
	}
	return state, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (game.State, error) {
	var (
		state                               game.State
		phase                               string
		shooterStake, faderStake, pot, tax  int64
		winner, forfeited, claimed, closed  int
		rollTick, actionTick, callbackTick  int64
		capacity                            int
		shooterPayout, createdAt, updatedAt int64
	)
	err := row.Scan(
		&state.DeploymentID,
		&state.GameID,
		&state.Shooter,
		&phase,
		&shooterStake,
		&faderStake,
		&pot,
		&tax,
		&state.Point,
		&winner,
		&forfeited,
		&state.PendingRollToken,
		&state.LastConsumedToken,
		&rollTick,
		&actionTick,
		&callbackTick,
		&state.RollRetries,
		&state.LastDie1,
		&state.LastDie2,
		&capacity,
		&shooterPayout,
		&claimed,
		&closed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return game.State{}, err
	}
	parsed, ok := game.ParsePhase(phase)
	if !ok {
		return game.State{}, fmt.Errorf("unknown phase %q", phase)
	}
	state.Phase = parsed
	state.ShooterStake = fromInt64(shooterStake)
	state.TotalFaderStake = fromInt64(faderStake)
	state.TotalPot = fromInt64(pot)
	state.TaxAmount = fromInt64(tax)
	state.WinnerIsShooter = winner != 0
	state.Forfeited = forfeited != 0
	state.LastRollTick = fromInt64(rollTick)
	state.LastActionTick = fromInt64(actionTick)
	state.LastCallbackTick = fromInt64(callbackTick)
	state.Faders = game.NewFaderTable(capacity)
	state.ShooterPayout = fromInt64(shooterPayout)
	state.ShooterClaimed = claimed != 0
	state.Closed = closed != 0
	state.CreatedAt = fromMillis(createdAt)
	state.UpdatedAt = fromMillis(updatedAt)
	return state, nil
}

func loadFaders(ctx context.Context, q queryer, state *game.State) error {
	rows, err := q.QueryContext(
		ctx,
		`SELECT fader_id, stake, payout, claimed
		   FROM game_faders
		  WHERE deployment_id = ? AND game_id = ?
		  ORDER BY slot ASC`,
		state.DeploymentID, state.GameID,
	)
	if err != nil {
		return fmt.Errorf("load faders: %w", err)
	}
	defer rows.Close()

	var faders []game.Fader
	for rows.Next() {
		var (
			f             game.Fader
			stake, payout int64
			claimed       int
		)
		if err := rows.Scan(&f.ID, &stake, &payout, &claimed); err != nil {
			return fmt.Errorf("load faders: %w", err)
		}
		f.Stake = fromInt64(stake)
		f.Payout = fromInt64(payout)
		f.Claimed = claimed != 0
		faders = append(faders, f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load faders: %w", err)
	}
	state.Faders = game.RestoreFaderTable(state.Faders.Capacity(), faders)
	return nil
}
