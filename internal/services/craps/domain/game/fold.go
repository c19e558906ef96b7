package game

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/oracle"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

// FoldHandledTypes returns the event types handled by Fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeOpened,
		EventTypeFaderJoined,
		EventTypeRollRequested,
		EventTypeRollReissued,
		EventTypeRollResolved,
		EventTypeSettled,
		EventTypeCanceled,
		EventTypePayoutClaimed,
		EventTypeClosed,
	}
}

// Fold applies an event to game state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeOpened:
		var payload OpenedPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		state = State{
			DeploymentID:   evt.DeploymentID,
			GameID:         evt.GameID,
			Shooter:        payload.Shooter,
			Phase:          PhaseOpen,
			ShooterStake:   payload.Stake,
			TotalPot:       payload.Stake,
			LastActionTick: evt.Tick,
			Faders:         NewFaderTable(payload.FaderCapacity),
			CreatedAt:      evt.Timestamp,
		}
	case EventTypeFaderJoined:
		var payload FaderJoinedPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		if slot := state.Faders.add(payload.Fader, payload.Stake); slot < 0 {
			return state, fmt.Errorf("game fold %s: fader table full", evt.Type)
		}
		state.TotalFaderStake += payload.Stake
		state.TotalPot += payload.Stake
		state.Phase = PhaseReadyToRoll
		state.LastActionTick = evt.Tick
	case EventTypeRollRequested:
		var payload RollTokenPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		state.Phase = PhaseRolling
		state.PendingRollToken = payload.Token
		state.LastRollTick = evt.Tick
		state.LastActionTick = evt.Tick
	case EventTypeRollReissued:
		var payload RollReissuedPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		state.PendingRollToken = payload.Token
		state.RollRetries = payload.Retry
		state.LastRollTick = evt.Tick
		state.LastActionTick = evt.Tick
	case EventTypeRollResolved:
		var payload RollResolvedPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		state.PendingRollToken = ""
		state.LastConsumedToken = payload.Token
		state.LastCallbackTick = evt.Tick
		state.LastActionTick = evt.Tick
		state.LastDie1 = payload.Die1
		state.LastDie2 = payload.Die2
		state.Point = payload.Point
		if !oracle.ParseOutcome(payload.Outcome).Resolves() {
			state.Phase = PhasePointEstablished
		}
	case EventTypeSettled:
		var payload SettledPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		state.Phase = PhaseSettled
		state.PendingRollToken = ""
		state.TaxAmount = payload.Tax
		state.ShooterPayout = payload.ShooterPayout
		state.WinnerIsShooter = payload.ShooterWins
		state.Forfeited = payload.Forfeit
		state.Faders.setPayouts(payload.FaderPayouts)
		state.LastActionTick = evt.Tick
	case EventTypeCanceled:
		state.Phase = PhaseCanceled
		state.LastActionTick = evt.Tick
	case EventTypePayoutClaimed:
		var payload PayoutClaimedPayload
		if err := decode(evt, &payload); err != nil {
			return state, err
		}
		if payload.Slot == payout.ShooterSlot {
			state.ShooterClaimed = true
		} else {
			state.Faders.markClaimed(payload.Slot)
		}
	case EventTypeClosed:
		state.Closed = true
	default:
		return state, nil
	}
	state.UpdatedAt = evt.Timestamp
	return state, nil
}

func decode(evt event.Event, target any) error {
	if err := json.Unmarshal(evt.PayloadJSON, target); err != nil {
		return fmt.Errorf("game fold %s: %w", evt.Type, err)
	}
	return nil
}
