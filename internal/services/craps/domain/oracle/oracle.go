// Package oracle validates randomness deliveries and maps entropy to dice
// outcomes.
package oracle

import (
	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
)

// Outcome is the result of one accepted roll.
type Outcome uint8

const (
	// OutcomeUnspecified is the zero value.
	OutcomeUnspecified Outcome = iota
	// OutcomeShooterWins resolves the game for the shooter.
	OutcomeShooterWins
	// OutcomeShooterLoses resolves the game for the faders.
	OutcomeShooterLoses
	// OutcomePointEstablished sets the point on a come-out roll.
	OutcomePointEstablished
	// OutcomeNoDecision keeps the established point.
	OutcomeNoDecision
)

// String returns the wire label of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeShooterWins:
		return "SHOOTER_WINS"
	case OutcomeShooterLoses:
		return "SHOOTER_LOSES"
	case OutcomePointEstablished:
		return "POINT_ESTABLISHED"
	case OutcomeNoDecision:
		return "NO_DECISION"
	default:
		return "UNSPECIFIED"
	}
}

// ParseOutcome maps a wire label back to an Outcome.
func ParseOutcome(value string) Outcome {
	for _, o := range []Outcome{OutcomeShooterWins, OutcomeShooterLoses, OutcomePointEstablished, OutcomeNoDecision} {
		if o.String() == value {
			return o
		}
	}
	return OutcomeUnspecified
}

// Resolves reports whether the outcome ends the game.
func (o Outcome) Resolves() bool {
	return o == OutcomeShooterWins || o == OutcomeShooterLoses
}

// Roll is the pair of dice derived from one entropy word.
type Roll struct {
	Die1 uint8
	Die2 uint8
}

// Sum returns the total of both dice.
func (r Roll) Sum() uint8 {
	return r.Die1 + r.Die2
}

// Dice derives two faces from independent base-6 digits of the entropy word.
func Dice(entropy uint64) Roll {
	return Roll{
		Die1: uint8(entropy%6) + 1,
		Die2: uint8((entropy/6)%6) + 1,
	}
}

// Resolve maps a dice sum to an outcome given the current point (0 when none
// is established). The returned point is the point after the roll.
func Resolve(point, sum uint8) (Outcome, uint8) {
	if point == 0 {
		switch sum {
		case 7, 11:
			return OutcomeShooterWins, 0
		case 2, 3, 12:
			return OutcomeShooterLoses, 0
		default:
			return OutcomePointEstablished, sum
		}
	}
	switch sum {
	case point:
		return OutcomeShooterWins, point
	case 7:
		return OutcomeShooterLoses, point
	default:
		return OutcomeNoDecision, point
	}
}

// Delivery is one randomness fulfillment as presented by the caller.
type Delivery struct {
	Token   string
	Entropy uint64
	// Signer and Program identify the attested oracle that produced the delivery.
	Signer  string
	Program string
}

// Expectation is what a game currently accepts from the oracle.
type Expectation struct {
	Rolling           bool
	PhaseLabel        string
	PendingToken      string
	LastConsumedToken string
	LastCallbackTick  uint64
	TrustedSigner     string
	TrustedProgram    string
}

// Validate checks a delivery against the expectation at tick now. It returns a
// correlation or phase error, or nil when the delivery may be consumed.
func Validate(exp Expectation, delivery Delivery, now uint64) error {
	if delivery.Token == "" {
		return apperrors.New(apperrors.CodeTokenMissing, "randomness token is required")
	}
	if delivery.Signer != exp.TrustedSigner {
		return apperrors.New(apperrors.CodeOracleSignerMismatch, "delivery signer is not the configured oracle")
	}
	if delivery.Program != exp.TrustedProgram {
		return apperrors.New(apperrors.CodeOracleProgramMismatch, "delivery program is not the configured oracle program")
	}
	if exp.LastConsumedToken != "" && delivery.Token == exp.LastConsumedToken {
		return apperrors.New(apperrors.CodeTokenReused, "randomness token was already consumed")
	}
	if !exp.Rolling {
		return apperrors.WithMetadata(apperrors.CodePhaseInvalid, "no roll is pending", map[string]string{"Phase": exp.PhaseLabel})
	}
	if delivery.Token != exp.PendingToken {
		return apperrors.New(apperrors.CodeTokenMismatch, "randomness token does not match the pending request")
	}
	if now <= exp.LastCallbackTick {
		return apperrors.New(apperrors.CodeCallbackStale, "delivery tick is not after the last accepted callback")
	}
	return nil
}
