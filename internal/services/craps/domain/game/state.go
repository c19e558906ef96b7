package game

import (
	"time"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

// State is the replayed game record.
type State struct {
	DeploymentID string
	GameID       string
	Shooter      string
	Phase        Phase

	ShooterStake    uint64
	TotalFaderStake uint64
	TotalPot        uint64
	TaxAmount       uint64

	// Point is 0 until a come-out roll establishes it.
	Point           uint8
	WinnerIsShooter bool
	Forfeited       bool

	// PendingRollToken is non-empty iff Phase is PhaseRolling.
	PendingRollToken  string
	LastConsumedToken string
	LastRollTick      uint64
	LastActionTick    uint64
	LastCallbackTick  uint64
	RollRetries       uint32
	LastDie1          uint8
	LastDie2          uint8

	Faders         FaderTable
	ShooterPayout  uint64
	ShooterClaimed bool
	Closed         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exists reports whether the game has been opened.
func (s State) Exists() bool {
	return s.GameID != "" && s.Phase != PhaseUnspecified
}

// IsParticipant reports whether id is the shooter or a fader.
func (s State) IsParticipant(id string) bool {
	return id == s.Shooter || s.Faders.Index(id) >= 0
}

// Book returns the entitlements of a terminal game: payouts once settled,
// original stakes once canceled. Non-terminal games have an empty book.
func (s State) Book() payout.Book {
	var book payout.Book
	switch s.Phase {
	case PhaseSettled:
		book.Parties = append(book.Parties, payout.Party{ID: s.Shooter, Slot: payout.ShooterSlot, Amount: s.ShooterPayout, Claimed: s.ShooterClaimed})
		for i, f := range s.Faders.All() {
			book.Parties = append(book.Parties, payout.Party{ID: f.ID, Slot: i, Amount: f.Payout, Claimed: f.Claimed})
		}
	case PhaseCanceled:
		book.Parties = append(book.Parties, payout.Party{ID: s.Shooter, Slot: payout.ShooterSlot, Amount: s.ShooterStake, Claimed: s.ShooterClaimed})
		for i, f := range s.Faders.All() {
			book.Parties = append(book.Parties, payout.Party{ID: f.ID, Slot: i, Amount: f.Stake, Claimed: f.Claimed})
		}
	}
	return book
}
