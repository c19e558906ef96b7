package game

import (
	"testing"
	"time"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
)

func TestFoldRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	for _, typ := range []event.Type{EventTypeOpened, EventTypeFaderJoined, EventTypeRollResolved, EventTypeSettled, EventTypePayoutClaimed} {
		if _, err := Fold(State{}, event.Event{Type: typ, PayloadJSON: []byte("{")}); err == nil {
			t.Fatalf("Fold(%s) expected error", typ)
		}
	}
}

func TestFoldIgnoresUnknownTypes(t *testing.T) {
	t.Parallel()

	state := State{GameID: "g", Phase: PhaseOpen}
	got, err := Fold(state, event.Event{Type: "deployment.updated", Timestamp: time.Unix(10, 0)})
	if err != nil {
		t.Fatalf("Fold error = %v", err)
	}
	if got != state {
		t.Fatalf("Fold changed state for foreign event: %+v", got)
	}
}

func TestFoldJoinOverCapacityFails(t *testing.T) {
	t.Parallel()

	state := State{GameID: "g", Phase: PhaseOpen, Faders: NewFaderTable(1)}
	state, err := Fold(state, event.Event{Type: EventTypeFaderJoined, PayloadJSON: []byte(`{"fader":"a","stake":1}`)})
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := Fold(state, event.Event{Type: EventTypeFaderJoined, PayloadJSON: []byte(`{"fader":"b","stake":1}`)}); err == nil {
		t.Fatal("expected over-capacity join to fail")
	}
}

func TestFaderTable(t *testing.T) {
	t.Parallel()

	table := NewFaderTable(MaxFaderSlots + 5)
	if table.Capacity() != MaxFaderSlots {
		t.Fatalf("capacity = %d, want %d", table.Capacity(), MaxFaderSlots)
	}
	restored := RestoreFaderTable(3, []Fader{{ID: "a", Stake: 1}, {ID: "b", Stake: 2, Claimed: true}})
	if restored.Len() != 2 || restored.Index("b") != 1 || restored.Index("z") != -1 {
		t.Fatalf("restored table = %+v", restored.All())
	}
	if got := restored.Stakes(); len(got) != 2 || got[1] != 2 {
		t.Fatalf("stakes = %v", got)
	}
	if restored.Full() {
		t.Fatal("table with a free slot reported full")
	}
}

func TestPhaseLabels(t *testing.T) {
	t.Parallel()

	for _, phase := range []Phase{PhaseOpen, PhaseReadyToRoll, PhaseRolling, PhasePointEstablished, PhaseSettled, PhaseCanceled} {
		got, ok := ParsePhase(phase.String())
		if !ok || got != phase {
			t.Fatalf("ParsePhase(%q) = %v/%v, want %v", phase.String(), got, ok, phase)
		}
	}
	if _, ok := ParsePhase("UNSPECIFIED"); ok {
		t.Fatal("expected UNSPECIFIED to be rejected")
	}
	if !PhaseSettled.Terminal() || !PhaseCanceled.Terminal() || PhaseRolling.Terminal() {
		t.Fatal("terminal predicate mismatch")
	}
}
