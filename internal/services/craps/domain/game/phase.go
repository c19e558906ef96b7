package game

// Phase is the closed set of game phases.
type Phase uint8

const (
	PhaseUnspecified Phase = iota
	PhaseOpen
	PhaseReadyToRoll
	PhaseRolling
	PhasePointEstablished
	PhaseSettled
	PhaseCanceled
)

var phaseLabels = map[Phase]string{
	PhaseUnspecified:      "UNSPECIFIED",
	PhaseOpen:             "OPEN",
	PhaseReadyToRoll:      "READY_TO_ROLL",
	PhaseRolling:          "ROLLING",
	PhasePointEstablished: "POINT_ESTABLISHED",
	PhaseSettled:          "SETTLED",
	PhaseCanceled:         "CANCELED",
}

// String returns the wire label of the phase.
func (p Phase) String() string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return phaseLabels[PhaseUnspecified]
}

// ParsePhase maps a wire label to a Phase.
func ParsePhase(label string) (Phase, bool) {
	for phase, l := range phaseLabels {
		if l == label && phase != PhaseUnspecified {
			return phase, true
		}
	}
	return PhaseUnspecified, false
}

// Terminal reports whether no further wagering transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseSettled || p == PhaseCanceled
}

// AcceptsJoins reports whether faders may still stake.
func (p Phase) AcceptsJoins() bool {
	return p == PhaseOpen || p == PhaseReadyToRoll
}

// AcceptsRollRequest reports whether the shooter may request a roll.
func (p Phase) AcceptsRollRequest() bool {
	return p == PhaseReadyToRoll || p == PhasePointEstablished
}

// Cancelable reports whether the shooter may cancel.
func (p Phase) Cancelable() bool {
	return p == PhaseOpen || p == PhaseReadyToRoll
}

// Forfeitable reports whether a stalled shooter may be forced to settle.
func (p Phase) Forfeitable() bool {
	return p == PhaseReadyToRoll || p == PhasePointEstablished
}
