// Package storage defines persistence contracts for craps deployments, games,
// the event journal, and the hosted ledger.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInsufficientFunds indicates a transfer source balance is below the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceOverflow indicates a transfer would overflow the destination balance.
	ErrBalanceOverflow = errors.New("balance overflow")
)

// Tx is the unit of work a command executes in. Every write made through a
// Tx commits together or not at all.
type Tx interface {
	// GetDeployment returns ErrNotFound for unknown deployments.
	GetDeployment(ctx context.Context, deploymentID string) (deployment.State, error)
	PutDeployment(ctx context.Context, state deployment.State) error
	// GetGame returns closed games too so their ids cannot be reused.
	GetGame(ctx context.Context, deploymentID, gameID string) (game.State, error)
	PutGame(ctx context.Context, state game.State) error
	// AppendEvent assigns the next journal sequence and chain hash.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	Transfer(ctx context.Context, from, to string, amount uint64) error
}

// Updater runs fn in a single serializable transaction.
type Updater interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// DeploymentReader reads deployment records.
type DeploymentReader interface {
	GetDeployment(ctx context.Context, deploymentID string) (deployment.State, error)
}

// GamePage stores one page of games.
type GamePage struct {
	Games         []game.State
	NextPageToken string
}

// ListGamesQuery selects open (not closed) games of a deployment.
type ListGamesQuery struct {
	DeploymentID string
	PageSize     int
	PageToken    string
	// Where is an optional SQL predicate over the games table with positional
	// Args, produced by the filter package.
	Where string
	Args  []any
}

// GameReader reads game records. Closed games are reported as ErrNotFound.
type GameReader interface {
	GetGame(ctx context.Context, deploymentID, gameID string) (game.State, error)
	ListGames(ctx context.Context, query ListGamesQuery) (GamePage, error)
}

// EventPage stores one page of journal events.
type EventPage struct {
	Events        []event.Event
	NextPageToken string
}

// ListEventsQuery selects journal events of a deployment, optionally one game.
type ListEventsQuery struct {
	DeploymentID string
	GameID       string
	AfterSeq     uint64
	PageSize     int
}

// EventReader pages through the journal in sequence order.
type EventReader interface {
	ListEvents(ctx context.Context, query ListEventsQuery) (EventPage, error)
}

// LedgerReader reads account balances.
type LedgerReader interface {
	Balance(ctx context.Context, account string) (uint64, error)
}

// Store is the full persistence surface of the craps service.
type Store interface {
	Updater
	DeploymentReader
	GameReader
	EventReader
	LedgerReader
	Close() error
}
