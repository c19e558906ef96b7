package deployment

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

const (
	CommandTypeInitialize  command.Type = "deployment.initialize"
	CommandTypeUpdate      command.Type = "deployment.update"
	CommandTypeSetFrozen   command.Type = "deployment.set_frozen"
	CommandTypeFundAccount command.Type = "deployment.fund_account"
	EventTypeInitialized   event.Type   = "deployment.initialized"
	EventTypeUpdated       event.Type   = "deployment.updated"
	EventTypeFrozenSet     event.Type   = "deployment.frozen_set"
	EventTypeAccountFunded event.Type   = "deployment.account_funded"
)

// Decide returns the decision for a deployment command against current state.
func Decide(state State, cmd command.Command, tick uint64, now time.Time) command.Decision {
	if payout.Reserved(cmd.ActorID) {
		return reject(apperrors.CodeReservedAccount, "caller identity names a reserved account")
	}
	switch cmd.Type {
	case CommandTypeInitialize:
		if state.Initialized {
			return reject(apperrors.CodeConfigAlreadyInitialized, "deployment already initialized")
		}
		var payload ConfigPayload
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
			return reject(apperrors.CodeInvalidArgument, "decode config payload")
		}
		payload = payload.normalized()
		if err := payload.apply(Config{}).Validate(); err != nil {
			return command.RejectError(err)
		}
		payloadJSON, _ := json.Marshal(InitializedPayload{Authority: cmd.ActorID, Config: payload})
		return command.Accept(command.NewEvent(cmd, EventTypeInitialized, payloadJSON, tick, now))

	case CommandTypeUpdate:
		if decision, ok := requireAuthority(state, cmd); !ok {
			return decision
		}
		if state.Config.Frozen {
			return reject(apperrors.CodeConfigFrozen, "deployment is frozen")
		}
		var payload ConfigPayload
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
			return reject(apperrors.CodeInvalidArgument, "decode config payload")
		}
		payload = payload.normalized()
		if err := payload.apply(state.Config).Validate(); err != nil {
			return command.RejectError(err)
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeUpdated, payloadJSON, tick, now))

	case CommandTypeSetFrozen:
		if decision, ok := requireAuthority(state, cmd); !ok {
			return decision
		}
		var payload FrozenSetPayload
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
			return reject(apperrors.CodeInvalidArgument, "decode frozen payload")
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeFrozenSet, payloadJSON, tick, now))

	case CommandTypeFundAccount:
		if decision, ok := requireAuthority(state, cmd); !ok {
			return decision
		}
		var payload FundAccountPayload
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
			return reject(apperrors.CodeInvalidArgument, "decode fund payload")
		}
		payload.Account = trim(payload.Account)
		if payload.Account == "" {
			return reject(apperrors.CodeInvalidArgument, "account is required")
		}
		if payout.Reserved(payload.Account) {
			return reject(apperrors.CodeInvalidArgument, "escrow accounts cannot be funded directly")
		}
		if payload.Amount == 0 {
			return reject(apperrors.CodeStakeZero, "amount must be positive")
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeAccountFunded, payloadJSON, tick, now))
	}
	return reject(apperrors.CodeInvalidArgument, "command type is not handled by deployment")
}

func requireAuthority(state State, cmd command.Command) (command.Decision, bool) {
	if !state.Initialized {
		return reject(apperrors.CodeConfigNotInitialized, "deployment is not initialized"), false
	}
	if cmd.ActorID != state.Config.Authority {
		return reject(apperrors.CodeNotAuthority, "caller is not the deployment authority"), false
	}
	return command.Decision{}, true
}

func reject(code apperrors.Code, message string) command.Decision {
	return command.Reject(command.Rejection{Code: code, Message: message})
}

func trim(value string) string {
	return strings.TrimSpace(value)
}
