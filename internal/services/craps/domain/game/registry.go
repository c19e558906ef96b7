package game

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
)

// RegisterCommands registers game commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, def := range []command.Definition{
		{Type: CommandTypeOpen, ValidatePayload: decodeAs[OpenPayload]},
		{Type: CommandTypeJoin, ValidatePayload: decodeAs[JoinPayload]},
		{Type: CommandTypeRequestRoll, ValidatePayload: decodeAs[RollTokenPayload]},
		{Type: CommandTypeRetryRoll, ValidatePayload: decodeAs[RollTokenPayload]},
		{Type: CommandTypeConsumeRandomness, ValidatePayload: decodeAs[ConsumeRandomnessPayload]},
		{Type: CommandTypeCancel},
		{Type: CommandTypeForfeit},
		{Type: CommandTypeClaim, ValidatePayload: decodeAs[ClaimPayload]},
		{Type: CommandTypeClose},
	} {
		def.Scope = command.ScopeGame
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers game events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, def := range []event.Definition{
		{Type: EventTypeOpened, ValidatePayload: decodeAs[OpenedPayload]},
		{Type: EventTypeFaderJoined, ValidatePayload: decodeAs[FaderJoinedPayload]},
		{Type: EventTypeRollRequested, ValidatePayload: decodeAs[RollTokenPayload]},
		{Type: EventTypeRollReissued, ValidatePayload: decodeAs[RollReissuedPayload]},
		{Type: EventTypeRollResolved, ValidatePayload: decodeAs[RollResolvedPayload]},
		{Type: EventTypeSettled, ValidatePayload: decodeAs[SettledPayload]},
		{Type: EventTypeCanceled},
		{Type: EventTypePayoutClaimed, ValidatePayload: decodeAs[PayoutClaimedPayload]},
		{Type: EventTypeClosed, ValidatePayload: decodeAs[ClosedPayload]},
	} {
		def.Scope = event.ScopeGame
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func decodeAs[T any](raw json.RawMessage) error {
	var payload T
	return json.Unmarshal(raw, &payload)
}
