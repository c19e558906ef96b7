package engine

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

// memStore is a copy-on-write store: each Update works on a clone that is
// only swapped in when fn succeeds.
type memStore struct {
	mu    sync.Mutex
	data  memData
	fail  map[string]error
	calls int
}

type memData struct {
	deployments map[string]deployment.State
	games       map[string]game.State
	events      []event.Event
	balances    map[string]uint64
}

func newMemStore() *memStore {
	return &memStore{data: memData{
		deployments: map[string]deployment.State{},
		games:       map[string]game.State{},
		balances:    map[string]uint64{},
	}}
}

func (d memData) clone() memData {
	return memData{
		deployments: maps.Clone(d.deployments),
		games:       maps.Clone(d.games),
		events:      append([]event.Event(nil), d.events...),
		balances:    maps.Clone(d.balances),
	}
}

func (s *memStore) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	tx := &memTx{data: s.data.clone(), fail: s.fail}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

type memTx struct {
	data memData
	fail map[string]error
}

func gameKey(deploymentID, gameID string) string { return deploymentID + "/" + gameID }

func (t *memTx) GetDeployment(_ context.Context, id string) (deployment.State, error) {
	state, ok := t.data.deployments[id]
	if !ok {
		return deployment.State{}, storage.ErrNotFound
	}
	return state, nil
}

func (t *memTx) PutDeployment(_ context.Context, state deployment.State) error {
	t.data.deployments[state.DeploymentID] = state
	return nil
}

func (t *memTx) GetGame(_ context.Context, deploymentID, gameID string) (game.State, error) {
	state, ok := t.data.games[gameKey(deploymentID, gameID)]
	if !ok {
		return game.State{}, storage.ErrNotFound
	}
	return state, nil
}

func (t *memTx) PutGame(_ context.Context, state game.State) error {
	if err := t.fail["put_game"]; err != nil {
		return err
	}
	t.data.games[gameKey(state.DeploymentID, state.GameID)] = state
	return nil
}

func (t *memTx) AppendEvent(_ context.Context, evt event.Event) (event.Event, error) {
	evt.Seq = uint64(len(t.data.events) + 1)
	t.data.events = append(t.data.events, evt)
	return evt, nil
}

func (t *memTx) Transfer(_ context.Context, from, to string, amount uint64) error {
	if err := t.fail["transfer:"+from]; err != nil {
		return err
	}
	if from != "" {
		if t.data.balances[from] < amount {
			return storage.ErrInsufficientFunds
		}
		t.data.balances[from] -= amount
	}
	next := t.data.balances[to] + amount
	if next < amount {
		return storage.ErrBalanceOverflow
	}
	t.data.balances[to] = next
	return nil
}

func (s *memStore) balance(account string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.balances[account]
}

func (s *memStore) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.events)
}

var errBoom = errors.New("boom")
