package settlement

import (
	"math"
	"testing"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
)

func TestSettleShooterWinsFirstRoll(t *testing.T) {
	t.Parallel()

	got, err := Settle(Input{ShooterStake: 1000, FaderStakes: []uint64{300, 700}, TaxBps: 250, ShooterWins: true})
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if got.TotalPot != 2000 {
		t.Fatalf("pot = %d, want 2000", got.TotalPot)
	}
	if got.Tax != 50 {
		t.Fatalf("tax = %d, want 50", got.Tax)
	}
	if got.ShooterPayout != 1950 {
		t.Fatalf("shooter payout = %d, want 1950", got.ShooterPayout)
	}
	for i, payout := range got.FaderPayouts {
		if payout != 0 {
			t.Fatalf("fader %d payout = %d, want 0", i, payout)
		}
	}
}

func TestSettleProportionalSplit(t *testing.T) {
	t.Parallel()

	got, err := Settle(Input{ShooterStake: 1000, FaderStakes: []uint64{300, 700}, TaxBps: 250})
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if got.ShooterPayout != 0 {
		t.Fatalf("shooter payout = %d, want 0", got.ShooterPayout)
	}
	if got.FaderPayouts[0] != 585 || got.FaderPayouts[1] != 1365 {
		t.Fatalf("fader payouts = %v, want [585 1365]", got.FaderPayouts)
	}
}

func TestSettleRemainderGoesToFirstSlot(t *testing.T) {
	t.Parallel()

	got, err := Settle(Input{ShooterStake: 100, FaderStakes: []uint64{1, 1, 1}})
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	want := []uint64{34, 33, 33}
	for i := range want {
		if got.FaderPayouts[i] != want[i] {
			t.Fatalf("fader payouts = %v, want %v", got.FaderPayouts, want)
		}
	}
}

func TestSettleLossWithoutFadersPaysShooter(t *testing.T) {
	t.Parallel()

	got, err := Settle(Input{ShooterStake: 1000, TaxBps: 100})
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if got.Tax != 10 || got.ShooterPayout != 990 {
		t.Fatalf("tax/shooter = %d/%d, want 10/990", got.Tax, got.ShooterPayout)
	}
}

func TestSettleConservesPot(t *testing.T) {
	t.Parallel()

	cases := []Input{
		{ShooterStake: 7, FaderStakes: []uint64{3, 5, 11, 13}, TaxBps: 2500},
		{ShooterStake: 999_999, FaderStakes: []uint64{1, 2, 3, 4, 5, 6, 7}, TaxBps: 333},
		{ShooterStake: 1, FaderStakes: []uint64{1_000_000_007, 3}, TaxBps: 1},
		{ShooterStake: math.MaxUint64 / 4, FaderStakes: []uint64{math.MaxUint64 / 4, 17}, TaxBps: 2499},
		{ShooterStake: 13, FaderStakes: []uint64{2, 9}, TaxBps: 0, ShooterWins: true},
	}
	for _, in := range cases {
		got, err := Settle(in)
		if err != nil {
			t.Fatalf("Settle(%+v) error = %v", in, err)
		}
		total := got.Tax + got.ShooterPayout
		for _, payout := range got.FaderPayouts {
			total += payout
		}
		if total != got.TotalPot {
			t.Fatalf("Settle(%+v) total = %d, want %d", in, total, got.TotalPot)
		}
	}
}

func TestSettleOverflowAborts(t *testing.T) {
	t.Parallel()

	_, err := Settle(Input{ShooterStake: math.MaxUint64, FaderStakes: []uint64{1}})
	if apperrors.CodeOf(err) != apperrors.CodeArithmeticOverflow {
		t.Fatalf("code = %s, want %s", apperrors.CodeOf(err), apperrors.CodeArithmeticOverflow)
	}
}

func TestTax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pot  uint64
		bps  uint32
		want uint64
	}{
		{pot: 2000, bps: 250, want: 50},
		{pot: 399, bps: 250, want: 9},
		{pot: 100, bps: 0, want: 0},
		{pot: math.MaxUint64, bps: 10_000, want: math.MaxUint64},
	}
	for _, tc := range tests {
		got, err := Tax(tc.pot, tc.bps)
		if err != nil {
			t.Fatalf("Tax(%d, %d) error = %v", tc.pot, tc.bps, err)
		}
		if got != tc.want {
			t.Fatalf("Tax(%d, %d) = %d, want %d", tc.pot, tc.bps, got, tc.want)
		}
	}
	if _, err := Tax(1, 10_001); err == nil {
		t.Fatal("expected error for rate above 100%")
	}
}

func TestMulDiv(t *testing.T) {
	t.Parallel()

	got, err := MulDiv(math.MaxUint64, 3, 4)
	if err != nil {
		t.Fatalf("MulDiv error = %v", err)
	}
	if want := uint64(math.MaxUint64 / 4 * 3); got < want {
		t.Fatalf("MulDiv = %d, want >= %d", got, want)
	}
	if _, err := MulDiv(math.MaxUint64, 2, 1); err == nil {
		t.Fatal("expected overflow")
	}
	if _, err := MulDiv(1, 1, 0); err == nil {
		t.Fatal("expected division by zero error")
	}
}
