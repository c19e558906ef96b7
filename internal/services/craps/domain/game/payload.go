package game

// OpenPayload captures the payload for game.open commands.
type OpenPayload struct {
	Stake uint64 `json:"stake"`
}

// OpenedPayload captures the payload for game.opened events.
type OpenedPayload struct {
	Shooter       string `json:"shooter"`
	Stake         uint64 `json:"stake"`
	FaderCapacity int    `json:"fader_capacity"`
}

// JoinPayload captures the payload for game.join commands.
type JoinPayload struct {
	Stake uint64 `json:"stake"`
}

// FaderJoinedPayload captures the payload for game.fader_joined events.
type FaderJoinedPayload struct {
	Fader string `json:"fader"`
	Stake uint64 `json:"stake"`
	Slot  int    `json:"slot"`
}

// RollTokenPayload captures the payload for game.request_roll and
// game.retry_roll commands and game.roll_requested events.
type RollTokenPayload struct {
	Token string `json:"token"`
}

// RollReissuedPayload captures the payload for game.roll_reissued events.
type RollReissuedPayload struct {
	PreviousToken string `json:"previous_token"`
	Token         string `json:"token"`
	Retry         uint32 `json:"retry"`
}

// ConsumeRandomnessPayload captures the payload for game.consume_randomness
// commands. The command actor is the attested oracle signer.
type ConsumeRandomnessPayload struct {
	Token   string `json:"token"`
	Entropy uint64 `json:"entropy"`
	Program string `json:"program"`
}

// RollResolvedPayload captures the payload for game.roll_resolved events.
type RollResolvedPayload struct {
	Token   string `json:"token"`
	Entropy uint64 `json:"entropy"`
	Die1    uint8  `json:"die1"`
	Die2    uint8  `json:"die2"`
	Sum     uint8  `json:"sum"`
	Point   uint8  `json:"point"`
	Outcome string `json:"outcome"`
}

// SettledPayload captures the payload for game.settled events.
type SettledPayload struct {
	ShooterWins   bool     `json:"shooter_wins"`
	Forfeit       bool     `json:"forfeit,omitempty"`
	Tax           uint64   `json:"tax"`
	ShooterPayout uint64   `json:"shooter_payout"`
	FaderPayouts  []uint64 `json:"fader_payouts"`
}

// CanceledPayload captures the payload for game.canceled events.
type CanceledPayload struct{}

// ClaimPayload captures the payload for game.claim commands. Refund selects a
// stake refund from a canceled game instead of a settled payout.
type ClaimPayload struct {
	Refund bool `json:"refund,omitempty"`
}

// PayoutClaimedPayload captures the payload for game.payout_claimed events.
type PayoutClaimedPayload struct {
	Claimant string `json:"claimant"`
	Slot     int    `json:"slot"`
	Amount   uint64 `json:"amount"`
	Refund   bool   `json:"refund,omitempty"`
}

// ClosedPayload captures the payload for game.closed events.
type ClosedPayload struct {
	Residual uint64 `json:"residual"`
	Treasury string `json:"treasury"`
}
