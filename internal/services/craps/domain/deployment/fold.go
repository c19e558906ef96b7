package deployment

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
)

// FoldHandledTypes returns the event types handled by Fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeInitialized,
		EventTypeUpdated,
		EventTypeFrozenSet,
		EventTypeAccountFunded,
	}
}

// Fold applies an event to deployment state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeInitialized:
		var payload InitializedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("deployment fold %s: %w", evt.Type, err)
		}
		state.DeploymentID = evt.DeploymentID
		state.Initialized = true
		state.Config = payload.Config.apply(Config{Authority: payload.Authority})
	case EventTypeUpdated:
		var payload ConfigPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("deployment fold %s: %w", evt.Type, err)
		}
		state.Config = payload.apply(state.Config)
	case EventTypeFrozenSet:
		var payload FrozenSetPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("deployment fold %s: %w", evt.Type, err)
		}
		state.Config.Frozen = payload.Frozen
	case EventTypeAccountFunded:
		// Ledger-only; the balance lives in storage.
	}
	return state, nil
}
