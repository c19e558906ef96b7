package craps

import (
	"math"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
)

func deploymentToProto(state deployment.State) *crapsv1.Deployment {
	cfg := state.Config
	return &crapsv1.Deployment{
		DeploymentID: state.DeploymentID,
		Authority:    cfg.Authority,
		Frozen:       cfg.Frozen,
		Config: crapsv1.DeploymentConfig{
			OracleProgram:    cfg.OracleProgram,
			OracleSigner:     cfg.OracleSigner,
			Treasury:         cfg.Treasury,
			TaxBps:           cfg.TaxBps,
			JoinTimeoutTicks: cfg.JoinTimeoutTicks,
			RollTimeoutTicks: cfg.RollTimeoutTicks,
			MaxFaders:        uint32(cfg.MaxFaders),
			MaxRollRetries:   cfg.MaxRollRetries,
		},
	}
}

// configPayloadFromProto narrows max_faders to the stored width. Values past
// the width saturate so the range check still rejects them.
func configPayloadFromProto(cfg crapsv1.DeploymentConfig) deployment.ConfigPayload {
	return deployment.ConfigPayload{
		OracleProgram:    cfg.OracleProgram,
		OracleSigner:     cfg.OracleSigner,
		Treasury:         cfg.Treasury,
		TaxBps:           cfg.TaxBps,
		JoinTimeoutTicks: cfg.JoinTimeoutTicks,
		RollTimeoutTicks: cfg.RollTimeoutTicks,
		MaxFaders:        uint8(min(cfg.MaxFaders, math.MaxUint8)),
		MaxRollRetries:   cfg.MaxRollRetries,
	}
}

// gameToProto maps a game record. taxBps feeds the shooter payout preview of
// games still in play.
func gameToProto(state game.State, taxBps uint32) *crapsv1.Game {
	out := &crapsv1.Game{
		DeploymentID:     state.DeploymentID,
		GameID:           state.GameID,
		Shooter:          state.Shooter,
		Phase:            state.Phase.String(),
		ShooterStake:     state.ShooterStake,
		TotalFaderStake:  state.TotalFaderStake,
		TotalPot:         state.TotalPot,
		TaxAmount:        state.TaxAmount,
		Point:            uint32(state.Point),
		WinnerIsShooter:  state.WinnerIsShooter,
		Forfeited:        state.Forfeited,
		PendingRollToken: state.PendingRollToken,
		LastDie1:         uint32(state.LastDie1),
		LastDie2:         uint32(state.LastDie2),
		RollRetries:      state.RollRetries,
		LastActionTick:   state.LastActionTick,
		LastRollTick:     state.LastRollTick,
		FaderCapacity:    int32(state.Faders.Capacity()),
		ShooterPayout:    state.ShooterPayout,
		ShooterClaimed:   state.ShooterClaimed,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        state.UpdatedAt,
	}
	if !state.Phase.Terminal() {
		if preview, err := game.PotentialShooterPayout(state.TotalPot, taxBps); err == nil {
			out.PotentialShooterPayout = preview
		}
	}
	faders := state.Faders.All()
	out.Faders = make([]crapsv1.Fader, 0, len(faders))
	for i, f := range faders {
		out.Faders = append(out.Faders, crapsv1.Fader{
			Slot:    int32(i),
			FaderID: f.ID,
			Stake:   f.Stake,
			Payout:  f.Payout,
			Claimed: f.Claimed,
		})
	}
	return out
}

func eventToProto(evt event.Event) *crapsv1.Event {
	return &crapsv1.Event{
		Seq:         evt.Seq,
		GameID:      evt.GameID,
		Type:        string(evt.Type),
		Tick:        evt.Tick,
		Timestamp:   evt.Timestamp,
		ActorID:     evt.ActorID,
		RequestID:   evt.RequestID,
		PayloadJSON: string(evt.PayloadJSON),
		ChainHash:   evt.ChainHash,
	}
}

func rollToProto(payload game.RollResolvedPayload) *crapsv1.Roll {
	return &crapsv1.Roll{
		Die1:    uint32(payload.Die1),
		Die2:    uint32(payload.Die2),
		Sum:     uint32(payload.Sum),
		Outcome: payload.Outcome,
		Point:   uint32(payload.Point),
	}
}
