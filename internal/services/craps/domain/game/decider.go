package game

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/oracle"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/settlement"
)

const (
	CommandTypeOpen              command.Type = "game.open"
	CommandTypeJoin              command.Type = "game.join"
	CommandTypeRequestRoll       command.Type = "game.request_roll"
	CommandTypeRetryRoll         command.Type = "game.retry_roll"
	CommandTypeConsumeRandomness command.Type = "game.consume_randomness"
	CommandTypeCancel            command.Type = "game.cancel"
	CommandTypeForfeit           command.Type = "game.forfeit"
	CommandTypeClaim             command.Type = "game.claim"
	CommandTypeClose             command.Type = "game.close"

	EventTypeOpened        event.Type = "game.opened"
	EventTypeFaderJoined   event.Type = "game.fader_joined"
	EventTypeRollRequested event.Type = "game.roll_requested"
	EventTypeRollReissued  event.Type = "game.roll_reissued"
	EventTypeRollResolved  event.Type = "game.roll_resolved"
	EventTypeSettled       event.Type = "game.settled"
	EventTypeCanceled      event.Type = "game.canceled"
	EventTypePayoutClaimed event.Type = "game.payout_claimed"
	EventTypeClosed        event.Type = "game.closed"
)

// Decide returns the decision for a game command. cfg is the deployment
// config at decision time and tick is the host logical clock.
func Decide(state State, cfg deployment.Config, cmd command.Command, tick uint64, now time.Time) command.Decision {
	d := decider{state: state, cfg: cfg, cmd: cmd, tick: tick, now: now}
	if payout.Reserved(cmd.ActorID) {
		return reject(apperrors.CodeReservedAccount, "caller identity names a reserved account", nil)
	}
	if cmd.Type == CommandTypeOpen {
		return d.open()
	}
	if !state.Exists() {
		return reject(apperrors.CodeNotFound, "game not found", nil)
	}
	if state.Closed {
		return reject(apperrors.CodeGameClosed, "game is closed", nil)
	}
	switch cmd.Type {
	case CommandTypeJoin:
		return d.join()
	case CommandTypeRequestRoll:
		return d.requestRoll()
	case CommandTypeRetryRoll:
		return d.retryRoll()
	case CommandTypeConsumeRandomness:
		return d.consumeRandomness()
	case CommandTypeCancel:
		return d.cancel()
	case CommandTypeForfeit:
		return d.forfeit()
	case CommandTypeClaim:
		return d.claim()
	case CommandTypeClose:
		return d.close()
	}
	return reject(apperrors.CodeInvalidArgument, "command type is not handled by game", nil)
}

type decider struct {
	state State
	cfg   deployment.Config
	cmd   command.Command
	tick  uint64
	now   time.Time
}

func (d decider) open() command.Decision {
	if d.state.Exists() {
		return reject(apperrors.CodeAlreadyExists, "game already exists", nil)
	}
	if d.cfg.Frozen {
		return reject(apperrors.CodeConfigFrozen, "deployment is frozen", nil)
	}
	var payload OpenPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	if payload.Stake == 0 {
		return reject(apperrors.CodeStakeZero, "shooter stake must be positive", nil)
	}
	return d.accept(EventTypeOpened, OpenedPayload{
		Shooter:       d.cmd.ActorID,
		Stake:         payload.Stake,
		FaderCapacity: int(d.cfg.MaxFaders),
	})
}

func (d decider) join() command.Decision {
	var payload JoinPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	if !d.state.Phase.AcceptsJoins() {
		return d.rejectPhase()
	}
	if d.cmd.ActorID == d.state.Shooter {
		return reject(apperrors.CodeShooterCannotFade, "shooter cannot fade their own game", nil)
	}
	if payload.Stake == 0 {
		return reject(apperrors.CodeStakeZero, "fader stake must be positive", nil)
	}
	if elapsed(d.tick, d.state.LastActionTick) > d.cfg.JoinTimeoutTicks {
		return reject(apperrors.CodeJoinWindowElapsed, "join window elapsed", nil)
	}
	slot := d.state.Faders.Index(d.cmd.ActorID)
	if slot < 0 {
		if d.state.Faders.Full() {
			return reject(apperrors.CodeFaderTableFull, "fader table is full", nil)
		}
		slot = d.state.Faders.Len()
	} else if _, err := settlement.Add(d.state.Faders.At(slot).Stake, payload.Stake); err != nil {
		return command.RejectError(err)
	}
	if _, err := settlement.Add(d.state.TotalPot, payload.Stake); err != nil {
		return command.RejectError(err)
	}
	return d.accept(EventTypeFaderJoined, FaderJoinedPayload{
		Fader: d.cmd.ActorID,
		Stake: payload.Stake,
		Slot:  slot,
	})
}

func (d decider) requestRoll() command.Decision {
	var payload RollTokenPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	if d.state.PendingRollToken != "" {
		return reject(apperrors.CodeRollPending, "a roll is already pending", nil)
	}
	if !d.state.Phase.AcceptsRollRequest() {
		return d.rejectPhase()
	}
	if d.cmd.ActorID != d.state.Shooter {
		return reject(apperrors.CodeNotShooter, "only the shooter may request a roll", nil)
	}
	token := strings.TrimSpace(payload.Token)
	if token == "" {
		return reject(apperrors.CodeTokenMissing, "roll token is required", nil)
	}
	if token == d.state.LastConsumedToken {
		return reject(apperrors.CodeTokenReused, "roll token was already consumed", nil)
	}
	if elapsed(d.tick, d.state.LastActionTick) > d.cfg.RollTimeoutTicks {
		return reject(apperrors.CodeRollWindowElapsed, "roll window elapsed", nil)
	}
	return d.accept(EventTypeRollRequested, RollTokenPayload{Token: token})
}

func (d decider) retryRoll() command.Decision {
	var payload RollTokenPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	if d.state.Phase != PhaseRolling {
		return d.rejectPhase()
	}
	if !d.state.IsParticipant(d.cmd.ActorID) {
		return reject(apperrors.CodeNotParticipant, "only the shooter or a fader may re-issue a roll", nil)
	}
	token := strings.TrimSpace(payload.Token)
	if token == "" {
		return reject(apperrors.CodeTokenMissing, "roll token is required", nil)
	}
	if token == d.state.PendingRollToken || token == d.state.LastConsumedToken {
		return reject(apperrors.CodeTokenReused, "roll token must be fresh", nil)
	}
	if d.state.RollRetries >= d.cfg.MaxRollRetries {
		return reject(apperrors.CodeRollRetriesExhausted, "no roll retries remain", nil)
	}
	if elapsed(d.tick, d.state.LastRollTick) <= d.cfg.RollTimeoutTicks {
		return reject(apperrors.CodeOracleWindowOpen, "oracle may still deliver", nil)
	}
	return d.accept(EventTypeRollReissued, RollReissuedPayload{
		PreviousToken: d.state.PendingRollToken,
		Token:         token,
		Retry:         d.state.RollRetries + 1,
	})
}

func (d decider) consumeRandomness() command.Decision {
	var payload ConsumeRandomnessPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	exp := oracle.Expectation{
		Rolling:           d.state.Phase == PhaseRolling,
		PhaseLabel:        d.state.Phase.String(),
		PendingToken:      d.state.PendingRollToken,
		LastConsumedToken: d.state.LastConsumedToken,
		LastCallbackTick:  d.state.LastCallbackTick,
		TrustedSigner:     d.cfg.OracleSigner,
		TrustedProgram:    d.cfg.OracleProgram,
	}
	delivery := oracle.Delivery{
		Token:   strings.TrimSpace(payload.Token),
		Entropy: payload.Entropy,
		Signer:  d.cmd.ActorID,
		Program: strings.TrimSpace(payload.Program),
	}
	if err := oracle.Validate(exp, delivery, d.tick); err != nil {
		return command.RejectError(err)
	}

	roll := oracle.Dice(delivery.Entropy)
	outcome, point := oracle.Resolve(d.state.Point, roll.Sum())
	resolved := d.event(EventTypeRollResolved, RollResolvedPayload{
		Token:   delivery.Token,
		Entropy: delivery.Entropy,
		Die1:    roll.Die1,
		Die2:    roll.Die2,
		Sum:     roll.Sum(),
		Point:   point,
		Outcome: outcome.String(),
	})
	if !outcome.Resolves() {
		return command.Accept(resolved)
	}
	settled, err := d.settle(outcome == oracle.OutcomeShooterWins, false)
	if err != nil {
		return command.RejectError(err)
	}
	return command.Accept(resolved, settled)
}

func (d decider) cancel() command.Decision {
	if d.cmd.ActorID != d.state.Shooter {
		return reject(apperrors.CodeNotShooter, "only the shooter may cancel", nil)
	}
	if !d.state.Phase.Cancelable() {
		return d.rejectPhase()
	}
	return d.accept(EventTypeCanceled, CanceledPayload{})
}

func (d decider) forfeit() command.Decision {
	if !d.state.Phase.Forfeitable() {
		return d.rejectPhase()
	}
	if !d.state.IsParticipant(d.cmd.ActorID) {
		return reject(apperrors.CodeNotParticipant, "only the shooter or a fader may force settlement", nil)
	}
	if elapsed(d.tick, d.state.LastActionTick) <= d.cfg.RollTimeoutTicks {
		return reject(apperrors.CodeRollWindowOpen, "roll window is still open", nil)
	}
	settled, err := d.settle(false, true)
	if err != nil {
		return command.RejectError(err)
	}
	return command.Accept(settled)
}

func (d decider) claim() command.Decision {
	var payload ClaimPayload
	if decision, ok := d.decode(&payload); !ok {
		return decision
	}
	want := PhaseSettled
	if payload.Refund {
		want = PhaseCanceled
	}
	if d.state.Phase != want {
		return d.rejectPhase()
	}
	party, err := d.state.Book().Claim(d.cmd.ActorID)
	if err != nil {
		return command.RejectError(err)
	}
	return d.accept(EventTypePayoutClaimed, PayoutClaimedPayload{
		Claimant: party.ID,
		Slot:     party.Slot,
		Amount:   party.Amount,
		Refund:   payload.Refund,
	})
}

func (d decider) close() command.Decision {
	if d.cmd.ActorID != d.state.Shooter {
		return reject(apperrors.CodeNotShooter, "only the shooter may close", nil)
	}
	if !d.state.Phase.Terminal() {
		return d.rejectPhase()
	}
	book := d.state.Book()
	if outstanding := book.Outstanding(); len(outstanding) > 0 {
		return reject(apperrors.CodeClaimsOutstanding, "unclaimed funds remain", map[string]string{
			"Outstanding": strconv.Itoa(len(outstanding)),
		})
	}
	residual, err := book.Residual(d.state.TotalPot)
	if err != nil {
		return command.RejectError(err)
	}
	return d.accept(EventTypeClosed, ClosedPayload{Residual: residual, Treasury: d.cfg.Treasury})
}

func (d decider) settle(shooterWins, forfeit bool) (event.Event, error) {
	result, err := settlement.Settle(settlement.Input{
		ShooterStake: d.state.ShooterStake,
		FaderStakes:  d.state.Faders.Stakes(),
		TaxBps:       d.cfg.TaxBps,
		ShooterWins:  shooterWins,
	})
	if err != nil {
		return event.Event{}, err
	}
	if result.TotalPot != d.state.TotalPot {
		return event.Event{}, apperrors.New(apperrors.CodeArithmeticOverflow, "settled pot does not match recorded pot")
	}
	return d.event(EventTypeSettled, SettledPayload{
		ShooterWins:   shooterWins,
		Forfeit:       forfeit,
		Tax:           result.Tax,
		ShooterPayout: result.ShooterPayout,
		FaderPayouts:  result.FaderPayouts,
	}), nil
}

// decode reads the command payload; an empty payload leaves target zeroed.
func (d decider) decode(target any) (command.Decision, bool) {
	if len(d.cmd.PayloadJSON) == 0 {
		return command.Decision{}, true
	}
	if err := json.Unmarshal(d.cmd.PayloadJSON, target); err != nil {
		return reject(apperrors.CodeInvalidArgument, "decode "+string(d.cmd.Type)+" payload", nil), false
	}
	return command.Decision{}, true
}

func (d decider) event(eventType event.Type, payload any) event.Event {
	payloadJSON, _ := json.Marshal(payload)
	return command.NewEvent(d.cmd, eventType, payloadJSON, d.tick, d.now)
}

func (d decider) accept(eventType event.Type, payload any) command.Decision {
	return command.Accept(d.event(eventType, payload))
}

func (d decider) rejectPhase() command.Decision {
	return reject(apperrors.CodePhaseInvalid, "operation not allowed in phase "+d.state.Phase.String(), map[string]string{
		"Phase": d.state.Phase.String(),
	})
}

func reject(code apperrors.Code, message string, metadata map[string]string) command.Decision {
	return command.Reject(command.Rejection{Code: code, Message: message, Metadata: metadata})
}

// elapsed returns now - since, or 0 if the clock has not advanced.
func elapsed(now, since uint64) uint64 {
	if now <= since {
		return 0
	}
	return now - since
}
