package deployment

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

// Movements returns the ledger transfers implied by a deployment event.
func Movements(evt event.Event) ([]payout.Movement, error) {
	if evt.Type != EventTypeAccountFunded {
		return nil, nil
	}
	var payload FundAccountPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		return nil, fmt.Errorf("deployment movements %s: %w", evt.Type, err)
	}
	return []payout.Movement{{From: payout.MintAccount, To: payload.Account, Amount: payload.Amount}}, nil
}
