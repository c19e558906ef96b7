// Package crapsv1 defines the craps wire messages, the gRPC service
// descriptor, and a typed client. Messages are plain structs carried by the
// JSON codec.
package crapsv1

import "time"

// DeploymentConfig is the tunable deployment configuration.
type DeploymentConfig struct {
	OracleProgram    string `json:"oracle_program"`
	OracleSigner     string `json:"oracle_signer"`
	Treasury         string `json:"treasury"`
	TaxBps           uint32 `json:"tax_bps"`
	JoinTimeoutTicks uint64 `json:"join_timeout_ticks"`
	RollTimeoutTicks uint64 `json:"roll_timeout_ticks"`
	MaxFaders        uint32 `json:"max_faders"`
	MaxRollRetries   uint32 `json:"max_roll_retries"`
}

// Deployment is the read model of one deployment.
type Deployment struct {
	DeploymentID string           `json:"deployment_id"`
	Authority    string           `json:"authority"`
	Frozen       bool             `json:"frozen"`
	Config       DeploymentConfig `json:"config"`
}

// Fader is one occupied fader slot.
type Fader struct {
	Slot    int32  `json:"slot"`
	FaderID string `json:"fader_id"`
	Stake   uint64 `json:"stake"`
	Payout  uint64 `json:"payout"`
	Claimed bool   `json:"claimed"`
}

// Game is the read model of one game.
type Game struct {
	DeploymentID           string    `json:"deployment_id"`
	GameID                 string    `json:"game_id"`
	Shooter                string    `json:"shooter"`
	Phase                  string    `json:"phase"`
	ShooterStake           uint64    `json:"shooter_stake"`
	TotalFaderStake        uint64    `json:"total_fader_stake"`
	TotalPot               uint64    `json:"total_pot"`
	TaxAmount              uint64    `json:"tax_amount"`
	PotentialShooterPayout uint64    `json:"potential_shooter_payout"`
	Point                  uint32    `json:"point"`
	WinnerIsShooter        bool      `json:"winner_is_shooter"`
	Forfeited              bool      `json:"forfeited"`
	PendingRollToken       string    `json:"pending_roll_token,omitempty"`
	LastDie1               uint32    `json:"last_die1"`
	LastDie2               uint32    `json:"last_die2"`
	RollRetries            uint32    `json:"roll_retries"`
	LastActionTick         uint64    `json:"last_action_tick"`
	LastRollTick           uint64    `json:"last_roll_tick"`
	FaderCapacity          int32     `json:"fader_capacity"`
	Faders                 []Fader   `json:"faders"`
	ShooterPayout          uint64    `json:"shooter_payout"`
	ShooterClaimed         bool      `json:"shooter_claimed"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// GetPhase returns the phase label or "" for a nil game.
func (g *Game) GetPhase() string {
	if g == nil {
		return ""
	}
	return g.Phase
}

// GetPendingRollToken returns the pending roll token or "" for a nil game.
func (g *Game) GetPendingRollToken() string {
	if g == nil {
		return ""
	}
	return g.PendingRollToken
}

// Event is one journal entry.
type Event struct {
	Seq         uint64    `json:"seq"`
	GameID      string    `json:"game_id,omitempty"`
	Type        string    `json:"type"`
	Tick        uint64    `json:"tick"`
	Timestamp   time.Time `json:"timestamp"`
	ActorID     string    `json:"actor_id"`
	RequestID   string    `json:"request_id,omitempty"`
	PayloadJSON string    `json:"payload_json"`
	ChainHash   string    `json:"chain_hash"`
}

// Roll describes a resolved oracle callback.
type Roll struct {
	Die1    uint32 `json:"die1"`
	Die2    uint32 `json:"die2"`
	Sum     uint32 `json:"sum"`
	Outcome string `json:"outcome"`
	Point   uint32 `json:"point"`
}

type InitializeDeploymentRequest struct {
	DeploymentID string           `json:"deployment_id"`
	Config       DeploymentConfig `json:"config"`
}

type UpdateDeploymentRequest struct {
	DeploymentID string           `json:"deployment_id"`
	Config       DeploymentConfig `json:"config"`
}

type SetDeploymentFrozenRequest struct {
	DeploymentID string `json:"deployment_id"`
	Frozen       bool   `json:"frozen"`
}

type GetDeploymentRequest struct {
	DeploymentID string `json:"deployment_id"`
}

type DeploymentResponse struct {
	Deployment *Deployment `json:"deployment"`
}

type FundAccountRequest struct {
	DeploymentID string `json:"deployment_id"`
	Account      string `json:"account"`
	Amount       uint64 `json:"amount"`
}

type GetBalanceRequest struct {
	Account string `json:"account"`
}

type BalanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

// CreateGameRequest opens a game. An empty GameID asks the server to assign one.
type CreateGameRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id,omitempty"`
	Stake        uint64 `json:"stake"`
}

type JoinGameRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	Stake        uint64 `json:"stake"`
}

// RequestRollRequest asks the oracle for a roll. An empty Token asks the
// server to draw a fresh correlation token.
type RequestRollRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	Token        string `json:"token,omitempty"`
}

type RetryRollRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	Token        string `json:"token,omitempty"`
}

// ConsumeRandomnessRequest delivers oracle entropy for a pending roll.
type ConsumeRandomnessRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	Token        string `json:"token"`
	Entropy      uint64 `json:"entropy,string"`
	Attestation  string `json:"attestation"`
}

type ConsumeRandomnessResponse struct {
	Game *Game `json:"game"`
	Roll *Roll `json:"roll"`
}

// GameRequest targets one game for commands without a payload and for reads.
type GameRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
}

type GameResponse struct {
	Game *Game `json:"game"`
}

type ClaimResponse struct {
	Game   *Game  `json:"game"`
	Amount uint64 `json:"amount"`
}

type CloseGameResponse struct {
	Residual uint64 `json:"residual"`
	Treasury string `json:"treasury"`
}

type ListGamesRequest struct {
	DeploymentID string `json:"deployment_id"`
	PageSize     int32  `json:"page_size"`
	PageToken    string `json:"page_token,omitempty"`
	// Filter is an AIP-160 expression over phase, shooter, game_id,
	// deployment_id, and point.
	Filter string `json:"filter,omitempty"`
}

type ListGamesResponse struct {
	Games         []*Game `json:"games"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

type ListGameEventsRequest struct {
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	PageSize     int32  `json:"page_size"`
	PageToken    string `json:"page_token,omitempty"`
}

type ListGameEventsResponse struct {
	Events        []*Event `json:"events"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}
