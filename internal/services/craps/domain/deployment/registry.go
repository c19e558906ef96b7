package deployment

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
)

// RegisterCommands registers deployment commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, def := range []command.Definition{
		{Type: CommandTypeInitialize, Scope: command.ScopeDeployment, ValidatePayload: decodeAs[ConfigPayload]},
		{Type: CommandTypeUpdate, Scope: command.ScopeDeployment, ValidatePayload: decodeAs[ConfigPayload]},
		{Type: CommandTypeSetFrozen, Scope: command.ScopeDeployment, ValidatePayload: decodeAs[FrozenSetPayload]},
		{Type: CommandTypeFundAccount, Scope: command.ScopeDeployment, ValidatePayload: decodeAs[FundAccountPayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers deployment events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, def := range []event.Definition{
		{Type: EventTypeInitialized, Scope: event.ScopeDeployment, ValidatePayload: decodeAs[InitializedPayload]},
		{Type: EventTypeUpdated, Scope: event.ScopeDeployment, ValidatePayload: decodeAs[ConfigPayload]},
		{Type: EventTypeFrozenSet, Scope: event.ScopeDeployment, ValidatePayload: decodeAs[FrozenSetPayload]},
		{Type: EventTypeAccountFunded, Scope: event.ScopeDeployment, ValidatePayload: decodeAs[FundAccountPayload]},
	} {
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
