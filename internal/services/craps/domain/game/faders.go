package game

import (
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
)

// MaxFaderSlots is the hard capacity of every fader table.
const MaxFaderSlots = deployment.MaxFadersLimit

// Fader is one slot in the fader table.
type Fader struct {
	ID      string
	Stake   uint64
	Payout  uint64
	Claimed bool
}

// FaderTable is a fixed-capacity, insertion-ordered set of faders.
type FaderTable struct {
	slots    [MaxFaderSlots]Fader
	count    int
	capacity int
}

// NewFaderTable returns an empty table that admits at most capacity faders.
func NewFaderTable(capacity int) FaderTable {
	if capacity > MaxFaderSlots {
		capacity = MaxFaderSlots
	}
	if capacity < 0 {
		capacity = 0
	}
	return FaderTable{capacity: capacity}
}

// RestoreFaderTable rebuilds a table from persisted slots in order.
func RestoreFaderTable(capacity int, faders []Fader) FaderTable {
	table := NewFaderTable(capacity)
	for _, f := range faders {
		if table.count == MaxFaderSlots {
			break
		}
		table.slots[table.count] = f
		table.count++
	}
	return table
}

// Len returns the number of occupied slots.
func (t FaderTable) Len() int { return t.count }

// Capacity returns the configured capacity.
func (t FaderTable) Capacity() int { return t.capacity }

// Full reports whether no further fader fits.
func (t FaderTable) Full() bool { return t.count >= t.capacity }

// At returns the fader in slot i.
func (t FaderTable) At(i int) Fader { return t.slots[i] }

// Index returns the slot of id, or -1.
func (t FaderTable) Index(id string) int {
	for i := 0; i < t.count; i++ {
		if t.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// All returns a copy of the occupied slots in table order.
func (t FaderTable) All() []Fader {
	out := make([]Fader, t.count)
	copy(out, t.slots[:t.count])
	return out
}

// Stakes returns the stakes in table order.
func (t FaderTable) Stakes() []uint64 {
	out := make([]uint64, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.slots[i].Stake
	}
	return out
}

// add appends a new fader or credits an existing one and returns its slot.
// It returns -1 when the fader is new and the table is full.
func (t *FaderTable) add(id string, stake uint64) int {
	if i := t.Index(id); i >= 0 {
		t.slots[i].Stake += stake
		return i
	}
	if t.Full() {
		return -1
	}
	t.slots[t.count] = Fader{ID: id, Stake: stake}
	t.count++
	return t.count - 1
}

func (t *FaderTable) setPayouts(payouts []uint64) {
	for i := 0; i < t.count && i < len(payouts); i++ {
		t.slots[i].Payout = payouts[i]
	}
}

func (t *FaderTable) markClaimed(slot int) {
	if slot >= 0 && slot < t.count {
		t.slots[slot].Claimed = true
	}
}
