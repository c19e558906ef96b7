// Package aggregate composes the deployment and game slices into the state a
// command is decided against, and routes decisions, folds, and fund movements
// to the owning slice.
package aggregate

import (
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
)

// State captures the aggregate a command is decided against.
type State struct {
	Deployment deployment.State
	Game       game.State
}
