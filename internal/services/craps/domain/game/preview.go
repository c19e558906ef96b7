package game

import "github.com/louisbranch/crapshoot/internal/services/craps/domain/settlement"

// PotentialShooterPayout returns what the shooter would receive if the game
// resolved in their favor now.
func PotentialShooterPayout(pot uint64, taxBps uint32) (uint64, error) {
	tax, err := settlement.Tax(pot, taxBps)
	if err != nil {
		return 0, err
	}
	return pot - tax, nil
}
