package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/aggregate"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrCommandRegistryRequired indicates a missing command registry.
	ErrCommandRegistryRequired = errors.New("command registry is required")
	// ErrEventRegistryRequired indicates a missing event registry.
	ErrEventRegistryRequired = errors.New("event registry is required")
	// ErrStoreRequired indicates a missing store.
	ErrStoreRequired = errors.New("store is required")
	// ErrClockRequired indicates a missing logical clock.
	ErrClockRequired = errors.New("clock is required")
)

const tracerName = "github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"

// Handler validates, decides, and commits commands.
type Handler struct {
	Commands *command.Registry
	Events   *event.Registry
	Store    storage.Updater
	Clock    Clock
	Now      func() time.Time
	Tracer   trace.Tracer

	Decider aggregate.Decider
	Folder  *aggregate.Folder
}

// Result captures execution outcomes.
type Result struct {
	Decision   command.Decision
	Deployment deployment.State
	Game       game.State
	Tick       uint64
}

// NewHandler builds a handler with the registries of every slice.
func NewHandler(store storage.Updater, clock Clock) (Handler, error) {
	commands, events, err := aggregate.NewRegistries()
	if err != nil {
		return Handler{}, fmt.Errorf("build registries: %w", err)
	}
	return Handler{
		Commands: commands,
		Events:   events,
		Store:    store,
		Clock:    clock,
		Folder:   &aggregate.Folder{},
	}, nil
}

// Execute runs cmd in one storage transaction. A rejected decision is returned
// with a nil error; callers surface it through Decision.Err.
func (h Handler) Execute(ctx context.Context, cmd command.Command) (Result, error) {
	if err := h.check(); err != nil {
		return Result{}, err
	}
	ctx, span := h.tracer().Start(ctx, "craps.engine.execute", trace.WithAttributes(
		attribute.String("craps.command_type", string(cmd.Type)),
		attribute.String("craps.deployment_id", cmd.DeploymentID),
		attribute.String("craps.game_id", cmd.GameID),
	))
	defer span.End()

	validated, err := h.Commands.ValidateForDecision(cmd)
	if err != nil {
		err = validationError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	cmd = validated

	var result Result
	err = h.Store.Update(ctx, func(tx storage.Tx) error {
		result = Result{}
		state, err := load(ctx, tx, cmd)
		if err != nil {
			return err
		}
		tick := h.Clock.Now()
		result.Tick = tick
		decision := h.Decider.Decide(state, cmd, tick, h.now())
		if err := decision.Validate(); err != nil {
			return err
		}
		result.Decision = decision
		result.Deployment = state.Deployment
		result.Game = state.Game
		if decision.Rejected() {
			return nil
		}

		stored := make([]event.Event, 0, len(decision.Events))
		for _, evt := range decision.Events {
			vetted, err := h.Events.ValidateForAppend(evt)
			if err != nil {
				return err
			}
			appended, err := tx.AppendEvent(ctx, vetted)
			if err != nil {
				return fmt.Errorf("append %s: %w", evt.Type, err)
			}
			stored = append(stored, appended)

			state, err = h.folder().Fold(state, appended)
			if err != nil {
				return wrapNonRetryable(fmt.Errorf("fold %s: %w", evt.Type, err))
			}
			if err := h.applyMovements(ctx, tx, appended); err != nil {
				return err
			}
		}
		result.Decision.Events = stored

		if err := persist(ctx, tx, cmd, state); err != nil {
			return wrapNonRetryable(err)
		}
		result.Deployment = state.Deployment
		result.Game = state.Game
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	if result.Decision.Rejected() {
		span.SetAttributes(attribute.String("craps.rejection_code", string(result.Decision.Rejections[0].Code)))
	} else {
		span.SetAttributes(attribute.Int("craps.event_count", len(result.Decision.Events)))
	}
	return result, nil
}

func (h Handler) check() error {
	switch {
	case h.Commands == nil:
		return ErrCommandRegistryRequired
	case h.Events == nil:
		return ErrEventRegistryRequired
	case h.Store == nil:
		return ErrStoreRequired
	case h.Clock == nil:
		return ErrClockRequired
	}
	return nil
}

// applyMovements moves funds for one appended event. Deposits that fail leave
// the whole command rejected; an escrow payout failing after the journal
// accepted it is surfaced as a non-retryable transfer failure.
func (h Handler) applyMovements(ctx context.Context, tx storage.Tx, evt event.Event) error {
	moves, err := h.folder().Movements(evt)
	if err != nil {
		return wrapNonRetryable(fmt.Errorf("movements %s: %w", evt.Type, err))
	}
	for _, move := range moves {
		err := tx.Transfer(ctx, move.From, move.To, move.Amount)
		if err == nil {
			continue
		}
		if move.FromEscrow() {
			return wrapNonRetryable(apperrors.Wrap(apperrors.CodeTransferFailed, "escrow transfer failed", err))
		}
		switch {
		case errors.Is(err, storage.ErrInsufficientFunds):
			return apperrors.WithMetadata(apperrors.CodeInsufficientFunds, "insufficient funds", map[string]string{"Account": move.From})
		case errors.Is(err, storage.ErrBalanceOverflow):
			return apperrors.Wrap(apperrors.CodeArithmeticOverflow, "balance overflow", err)
		}
		return fmt.Errorf("transfer %s -> %s: %w", move.From, move.To, err)
	}
	return nil
}

func load(ctx context.Context, tx storage.Tx, cmd command.Command) (aggregate.State, error) {
	var state aggregate.State
	dep, err := tx.GetDeployment(ctx, cmd.DeploymentID)
	switch {
	case err == nil:
		state.Deployment = dep
	case errors.Is(err, storage.ErrNotFound):
		state.Deployment = deployment.State{DeploymentID: cmd.DeploymentID}
	default:
		return state, fmt.Errorf("load deployment: %w", err)
	}
	if cmd.GameID == "" {
		return state, nil
	}
	g, err := tx.GetGame(ctx, cmd.DeploymentID, cmd.GameID)
	switch {
	case err == nil:
		state.Game = g
	case errors.Is(err, storage.ErrNotFound):
		state.Game = game.State{DeploymentID: cmd.DeploymentID, GameID: cmd.GameID}
	default:
		return state, fmt.Errorf("load game: %w", err)
	}
	return state, nil
}

func persist(ctx context.Context, tx storage.Tx, cmd command.Command, state aggregate.State) error {
	if strings.HasPrefix(string(cmd.Type), "deployment.") {
		if err := tx.PutDeployment(ctx, state.Deployment); err != nil {
			return fmt.Errorf("save deployment: %w", err)
		}
		return nil
	}
	if err := tx.PutGame(ctx, state.Game); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func validationError(err error) error {
	if errors.Is(err, command.ErrActorIDRequired) {
		return apperrors.Wrap(apperrors.CodeCallerMissing, "caller identity is required", err)
	}
	return apperrors.Wrap(apperrors.CodeInvalidArgument, err.Error(), err)
}

func (h Handler) folder() *aggregate.Folder {
	if h.Folder == nil {
		return defaultFolder
	}
	return h.Folder
}

var defaultFolder = &aggregate.Folder{}

func (h Handler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

func (h Handler) tracer() trace.Tracer {
	if h.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return h.Tracer
}
