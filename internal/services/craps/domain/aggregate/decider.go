package aggregate

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
)

// Decider routes commands to the owning slice by type prefix.
type Decider struct{}

// Decide returns the decision for cmd at logical tick.
func (Decider) Decide(state State, cmd command.Command, tick uint64, now time.Time) command.Decision {
	switch {
	case strings.HasPrefix(string(cmd.Type), "deployment."):
		return deployment.Decide(state.Deployment, cmd, tick, now)
	case strings.HasPrefix(string(cmd.Type), "game."):
		if !state.Deployment.Initialized {
			return command.Reject(command.Rejection{
				Code:    apperrors.CodeConfigNotInitialized,
				Message: "deployment is not initialized",
			})
		}
		return game.Decide(state.Game, state.Deployment.Config, cmd, tick, now)
	}
	return command.Reject(command.Rejection{
		Code:    apperrors.CodeInvalidArgument,
		Message: "unsupported command type " + string(cmd.Type),
	})
}

// NewRegistries builds the command and event registries for every slice.
func NewRegistries() (*command.Registry, *event.Registry, error) {
	commands := command.NewRegistry()
	events := event.NewRegistry()
	if err := deployment.RegisterCommands(commands); err != nil {
		return nil, nil, err
	}
	if err := game.RegisterCommands(commands); err != nil {
		return nil, nil, err
	}
	if err := deployment.RegisterEvents(events); err != nil {
		return nil, nil, err
	}
	if err := game.RegisterEvents(events); err != nil {
		return nil, nil, err
	}
	return commands, events, nil
}
