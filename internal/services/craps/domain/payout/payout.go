// Package payout tracks post-resolution entitlements and the fund movements
// that honor them.
package payout

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/settlement"
)

// EscrowPrefix prefixes the ledger account that holds a game's stakes.
const EscrowPrefix = "escrow/"

// MintAccount is the empty source account used for external deposits.
const MintAccount = ""

// Escrow returns the escrow account for a game.
func Escrow(deploymentID, gameID string) string {
	return EscrowPrefix + deploymentID + "/" + gameID
}

// Reserved reports whether account names a ledger account no caller may own.
func Reserved(account string) bool {
	return strings.HasPrefix(strings.TrimSpace(account), EscrowPrefix)
}

// Movement is one transfer the ledger must apply.
type Movement struct {
	From   string
	To     string
	Amount uint64
}

// FromEscrow reports whether the movement pays out of a game escrow.
func (m Movement) FromEscrow() bool {
	return strings.HasPrefix(m.From, EscrowPrefix)
}

// Party is one claimant and what they are owed.
type Party struct {
	ID      string
	Slot    int
	Amount  uint64
	Claimed bool
}

// ShooterSlot marks the shooter entry in a Book.
const ShooterSlot = -1

// Book is the set of parties entitled to funds from a terminal game.
type Book struct {
	Parties []Party
}

// Find returns the party registered for id.
func (b Book) Find(id string) (Party, bool) {
	for _, p := range b.Parties {
		if p.ID == id {
			return p, true
		}
	}
	return Party{}, false
}

// Claim checks that id may claim now and returns the party being paid.
func (b Book) Claim(id string) (Party, error) {
	party, ok := b.Find(id)
	if !ok {
		return Party{}, apperrors.WithMetadata(apperrors.CodeUnknownParticipant, "caller has no entitlement in this game", map[string]string{"Participant": id})
	}
	if party.Claimed {
		return Party{}, apperrors.New(apperrors.CodeAlreadyClaimed, "funds already claimed")
	}
	if party.Amount == 0 {
		return Party{}, apperrors.New(apperrors.CodeNothingToClaim, "nothing to claim")
	}
	return party, nil
}

// Outstanding returns the parties with a nonzero unclaimed amount.
func (b Book) Outstanding() []Party {
	var out []Party
	for _, p := range b.Parties {
		if p.Amount > 0 && !p.Claimed {
			out = append(out, p)
		}
	}
	return out
}

// ReadyToClose reports whether every nonzero entitlement has been claimed.
func (b Book) ReadyToClose() bool {
	return len(b.Outstanding()) == 0
}

// ClaimedTotal sums the amounts already paid out.
func (b Book) ClaimedTotal() (uint64, error) {
	var claimed []uint64
	for _, p := range b.Parties {
		if p.Claimed {
			claimed = append(claimed, p.Amount)
		}
	}
	return settlement.Sum(claimed)
}

// Residual returns the funds left in escrow once every claim is paid.
func (b Book) Residual(pot uint64) (uint64, error) {
	claimed, err := b.ClaimedTotal()
	if err != nil {
		return 0, err
	}
	if claimed > pot {
		return 0, apperrors.New(apperrors.CodeArithmeticOverflow, fmt.Sprintf("claimed %d exceeds pot %d", claimed, pot))
	}
	return pot - claimed, nil
}
