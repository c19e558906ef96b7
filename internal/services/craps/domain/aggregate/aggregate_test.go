package aggregate

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

func TestRegistriesCoverEveryFoldType(t *testing.T) {
	t.Parallel()

	commands, events, err := NewRegistries()
	if err != nil {
		t.Fatalf("NewRegistries: %v", err)
	}
	if len(commands.ListDefinitions()) != 13 {
		t.Fatalf("command definitions = %d, want 13", len(commands.ListDefinitions()))
	}

	var folder Folder
	dispatched := make(map[event.Type]bool)
	for _, typ := range folder.FoldDispatchedTypes() {
		dispatched[typ] = true
	}
	for _, def := range events.ListDefinitions() {
		if !dispatched[def.Type] {
			t.Fatalf("event %s has no fold", def.Type)
		}
	}
	if len(dispatched) != len(events.ListDefinitions()) {
		t.Fatalf("fold types = %d, registered events = %d", len(dispatched), len(events.ListDefinitions()))
	}
}

func TestDeciderRequiresInitializedDeployment(t *testing.T) {
	t.Parallel()

	decision := Decider{}.Decide(State{}, command.Command{
		DeploymentID: "dep-1",
		GameID:       "g",
		Type:         game.CommandTypeOpen,
		ActorID:      "shooter",
		PayloadJSON:  []byte(`{"stake":10}`),
	}, 1, time.Now())
	if got := decision.Rejections[0].Code; got != apperrors.CodeConfigNotInitialized {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeConfigNotInitialized)
	}

	decision = Decider{}.Decide(State{}, command.Command{Type: "ledger.mint"}, 1, time.Now())
	if got := decision.Rejections[0].Code; got != apperrors.CodeInvalidArgument {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeInvalidArgument)
	}
}

func TestDeciderRoutesAndFolderApplies(t *testing.T) {
	t.Parallel()

	var folder Folder
	state := State{}
	decide := func(cmd command.Command) {
		t.Helper()
		decision := Decider{}.Decide(state, cmd, 5, time.Unix(5, 0))
		if decision.Rejected() {
			t.Fatalf("%s rejected: %+v", cmd.Type, decision.Rejections)
		}
		for _, evt := range decision.Events {
			next, err := folder.Fold(state, evt)
			if err != nil {
				t.Fatalf("fold %s: %v", evt.Type, err)
			}
			state = next
		}
	}

	decide(command.Command{
		DeploymentID: "dep-1",
		Type:         deployment.CommandTypeInitialize,
		ActorID:      "admin",
		PayloadJSON:  []byte(`{"oracle_program":"p","oracle_signer":"s","treasury":"t","tax_bps":100,"join_timeout_ticks":10,"roll_timeout_ticks":10,"max_faders":2}`),
	})
	decide(command.Command{
		DeploymentID: "dep-1",
		GameID:       "g",
		Type:         game.CommandTypeOpen,
		ActorID:      "shooter",
		PayloadJSON:  []byte(`{"stake":10}`),
	})
	if state.Game.Phase != game.PhaseOpen || state.Game.Faders.Capacity() != 2 {
		t.Fatalf("game state = %+v", state.Game)
	}

	moves, err := folder.Movements(event.Event{
		DeploymentID: "dep-1",
		Type:         deployment.EventTypeAccountFunded,
		PayloadJSON:  []byte(`{"account":"alice","amount":9}`),
	})
	if err != nil {
		t.Fatalf("Movements: %v", err)
	}
	if len(moves) != 1 || moves[0] != (payout.Movement{From: payout.MintAccount, To: "alice", Amount: 9}) {
		t.Fatalf("moves = %+v", moves)
	}
	if _, err := folder.Fold(state, event.Event{Type: "unknown.type"}); err == nil {
		t.Fatal("expected unknown event type error")
	}
}
