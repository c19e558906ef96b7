// Package settlement converts a resolved game outcome into a tax amount and
// per-party payouts.
//
// Every function is pure and overflow-checked. Payouts always conserve the pot:
// the sum of fader payouts, the shooter payout, and the tax equals the pot.
package settlement

import (
	"fmt"
	"math/bits"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
)

// BpsDenominator is the number of basis points in one whole.
const BpsDenominator = 10_000

// Input describes the stakes of a game at resolution time.
type Input struct {
	ShooterStake uint64
	// FaderStakes are listed in table order. Slot 0 receives the rounding remainder.
	FaderStakes []uint64
	TaxBps      uint32
	ShooterWins bool
}

// Result is the settled payout table.
type Result struct {
	TotalPot      uint64
	Tax           uint64
	ShooterPayout uint64
	FaderPayouts  []uint64
	ShooterWins   bool
}

// Settle computes the tax and payouts for a resolved game.
//
// A shooter win pays the whole distributable amount to the shooter. A loss
// splits it across faders in proportion to stake with floor division, adding
// the leftover units to slot 0. A loss with no fader stake returns the
// distributable amount to the shooter.
func Settle(in Input) (Result, error) {
	totalFaderStake, err := Sum(in.FaderStakes)
	if err != nil {
		return Result{}, err
	}
	pot, err := Add(in.ShooterStake, totalFaderStake)
	if err != nil {
		return Result{}, err
	}
	tax, err := Tax(pot, in.TaxBps)
	if err != nil {
		return Result{}, err
	}
	distributable := pot - tax

	result := Result{
		TotalPot:     pot,
		Tax:          tax,
		FaderPayouts: make([]uint64, len(in.FaderStakes)),
		ShooterWins:  in.ShooterWins,
	}
	if in.ShooterWins || totalFaderStake == 0 {
		result.ShooterPayout = distributable
		return result, nil
	}

	var paid uint64
	for i, stake := range in.FaderStakes {
		share, err := MulDiv(distributable, stake, totalFaderStake)
		if err != nil {
			return Result{}, err
		}
		result.FaderPayouts[i] = share
		paid += share
	}
	result.FaderPayouts[0] += distributable - paid

	if err := result.checkConservation(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (r Result) checkConservation() error {
	total, err := Sum(r.FaderPayouts)
	if err != nil {
		return err
	}
	total, err = Add(total, r.ShooterPayout)
	if err != nil {
		return err
	}
	total, err = Add(total, r.Tax)
	if err != nil {
		return err
	}
	if total != r.TotalPot {
		return apperrors.New(apperrors.CodeArithmeticOverflow, fmt.Sprintf("payouts total %d, pot %d", total, r.TotalPot))
	}
	return nil
}

// Tax returns floor(pot * bps / 10000).
func Tax(pot uint64, bps uint32) (uint64, error) {
	if bps > BpsDenominator {
		return 0, apperrors.New(apperrors.CodeArithmeticOverflow, "tax rate exceeds the whole pot")
	}
	return MulDiv(pot, uint64(bps), BpsDenominator)
}

// MulDiv returns floor(a * b / c) using a 128-bit intermediate product.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, apperrors.New(apperrors.CodeArithmeticOverflow, "division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, apperrors.New(apperrors.CodeArithmeticOverflow, "quotient overflows 64 bits")
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo, nil
}

// Add returns a + b or an overflow error.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, apperrors.New(apperrors.CodeArithmeticOverflow, "amount overflows 64 bits")
	}
	return sum, nil
}

// Sum adds every value with overflow checks.
func Sum(values []uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		next, err := Add(total, v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}
