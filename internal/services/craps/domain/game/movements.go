package game

import (
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

// Movements returns the ledger transfers implied by a game event. Only
// deposits, claims, and the close sweep move funds.
func Movements(evt event.Event) ([]payout.Movement, error) {
	escrow := payout.Escrow(evt.DeploymentID, evt.GameID)
	switch evt.Type {
	case EventTypeOpened:
		var payload OpenedPayload
		if err := decode(evt, &payload); err != nil {
			return nil, err
		}
		return []payout.Movement{{From: payload.Shooter, To: escrow, Amount: payload.Stake}}, nil
	case EventTypeFaderJoined:
		var payload FaderJoinedPayload
		if err := decode(evt, &payload); err != nil {
			return nil, err
		}
		return []payout.Movement{{From: payload.Fader, To: escrow, Amount: payload.Stake}}, nil
	case EventTypePayoutClaimed:
		var payload PayoutClaimedPayload
		if err := decode(evt, &payload); err != nil {
			return nil, err
		}
		return []payout.Movement{{From: escrow, To: payload.Claimant, Amount: payload.Amount}}, nil
	case EventTypeClosed:
		var payload ClosedPayload
		if err := decode(evt, &payload); err != nil {
			return nil, err
		}
		if payload.Residual == 0 {
			return nil, nil
		}
		return []payout.Movement{{From: escrow, To: payload.Treasury, Amount: payload.Residual}}, nil
	}
	return nil, nil
}
