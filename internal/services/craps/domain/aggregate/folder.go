package aggregate

import (
	"fmt"
	"sync"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

// foldEntry maps a set of event types to the slice of State they update.
type foldEntry struct {
	types     func() []event.Type
	fold      func(state *State, evt event.Event) error
	movements func(evt event.Event) ([]payout.Movement, error)
}

func foldEntries() []foldEntry {
	return []foldEntry{
		{
			types: deployment.FoldHandledTypes,
			fold: func(state *State, evt event.Event) error {
				updated, err := deployment.Fold(state.Deployment, evt)
				if err != nil {
					return err
				}
				state.Deployment = updated
				return nil
			},
			movements: deployment.Movements,
		},
		{
			types: game.FoldHandledTypes,
			fold: func(state *State, evt event.Event) error {
				updated, err := game.Fold(state.Game, evt)
				if err != nil {
					return err
				}
				state.Game = updated
				return nil
			},
			movements: game.Movements,
		},
	}
}

// Folder folds events into aggregate state and derives their fund movements.
type Folder struct {
	once  sync.Once
	index map[event.Type]foldEntry
}

func (f *Folder) init() {
	f.once.Do(func() {
		f.index = make(map[event.Type]foldEntry)
		for _, entry := range foldEntries() {
			for _, t := range entry.types() {
				f.index[t] = entry
			}
		}
	})
}

// Fold applies evt to state.
func (f *Folder) Fold(state State, evt event.Event) (State, error) {
	f.init()
	entry, ok := f.index[evt.Type]
	if !ok {
		return state, fmt.Errorf("no fold registered for %s", evt.Type)
	}
	if err := entry.fold(&state, evt); err != nil {
		return state, err
	}
	return state, nil
}

// Movements returns the ledger transfers evt implies.
func (f *Folder) Movements(evt event.Event) ([]payout.Movement, error) {
	f.init()
	entry, ok := f.index[evt.Type]
	if !ok {
		return nil, fmt.Errorf("no fold registered for %s", evt.Type)
	}
	return entry.movements(evt)
}

// FoldDispatchedTypes returns every event type the folder handles.
func (f *Folder) FoldDispatchedTypes() []event.Type {
	f.init()
	types := make([]event.Type, 0, len(f.index))
	for t := range f.index {
		types = append(types, t)
	}
	return types
}
