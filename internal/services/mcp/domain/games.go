package domain

import (
	"context"
	"fmt"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// GameClient is the slice of the craps API the game tools read from.
type GameClient interface {
	GetGame(ctx context.Context, in *crapsv1.GameRequest, opts ...grpc.CallOption) (*crapsv1.GameResponse, error)
	ListGames(ctx context.Context, in *crapsv1.ListGamesRequest, opts ...grpc.CallOption) (*crapsv1.ListGamesResponse, error)
	ListGameEvents(ctx context.Context, in *crapsv1.ListGameEventsRequest, opts ...grpc.CallOption) (*crapsv1.ListGameEventsResponse, error)
}

// FaderSummary is one occupied fader slot.
type FaderSummary struct {
	Slot    int32  `json:"slot" jsonschema:"fader slot index"`
	FaderID string `json:"fader_id" jsonschema:"fader account"`
	Stake   uint64 `json:"stake" jsonschema:"escrowed stake"`
	Payout  uint64 `json:"payout,omitempty" jsonschema:"claimable payout once settled"`
	Claimed bool   `json:"claimed" jsonschema:"whether the payout or refund was withdrawn"`
}

// GameSummary is the agent-facing view of a game.
type GameSummary struct {
	DeploymentID           string         `json:"deployment_id" jsonschema:"deployment identifier"`
	GameID                 string         `json:"game_id" jsonschema:"game identifier"`
	Shooter                string         `json:"shooter" jsonschema:"shooter account"`
	Phase                  string         `json:"phase" jsonschema:"lifecycle phase"`
	ShooterStake           uint64         `json:"shooter_stake" jsonschema:"shooter stake"`
	TotalFaderStake        uint64         `json:"total_fader_stake" jsonschema:"sum of fader stakes"`
	TotalPot               uint64         `json:"total_pot" jsonschema:"shooter stake plus fader stakes"`
	TaxAmount              uint64         `json:"tax_amount,omitempty" jsonschema:"house tax withheld at settlement"`
	PotentialShooterPayout uint64         `json:"potential_shooter_payout,omitempty" jsonschema:"what a shooter win would pay now"`
	Point                  uint32         `json:"point,omitempty" jsonschema:"established point"`
	LastDice               []uint32       `json:"last_dice,omitempty" jsonschema:"most recent dice pair"`
	PendingRollToken       string         `json:"pending_roll_token,omitempty" jsonschema:"token of the outstanding randomness request"`
	WinnerIsShooter        bool           `json:"winner_is_shooter" jsonschema:"settled in the shooter's favor"`
	Forfeited              bool           `json:"forfeited" jsonschema:"settled by forfeit"`
	RollRetries            uint32         `json:"roll_retries" jsonschema:"roll retries consumed"`
	FaderCapacity          int32          `json:"fader_capacity" jsonschema:"maximum fader slots"`
	Faders                 []FaderSummary `json:"faders" jsonschema:"occupied fader slots"`
	ShooterPayout          uint64         `json:"shooter_payout,omitempty" jsonschema:"claimable shooter payout once settled"`
	ShooterClaimed         bool           `json:"shooter_claimed" jsonschema:"whether the shooter withdrew"`
	CreatedAt              string         `json:"created_at,omitempty" jsonschema:"RFC3339 creation time"`
	UpdatedAt              string         `json:"updated_at,omitempty" jsonschema:"RFC3339 last update time"`
}

// GameGetInput is the game_get tool input.
type GameGetInput struct {
	DeploymentID string `json:"deployment_id" jsonschema:"deployment identifier"`
	GameID       string `json:"game_id" jsonschema:"game identifier"`
}

// GameGetResult is the game_get tool output.
type GameGetResult struct {
	Game GameSummary `json:"game" jsonschema:"game state"`
}

// GameListInput is the game_list tool input.
type GameListInput struct {
	DeploymentID string `json:"deployment_id" jsonschema:"deployment identifier"`
	Filter       string `json:"filter,omitempty" jsonschema:"filter expression over phase, shooter, deployment_id, point"`
	PageSize     int32  `json:"page_size,omitempty" jsonschema:"maximum games to return"`
	PageToken    string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// GameListResult is the game_list tool output.
type GameListResult struct {
	Games         []GameSummary `json:"games" jsonschema:"matching games"`
	NextPageToken string        `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// GameEventsInput is the game_events tool input.
type GameEventsInput struct {
	DeploymentID string `json:"deployment_id" jsonschema:"deployment identifier"`
	GameID       string `json:"game_id,omitempty" jsonschema:"optional game identifier; empty lists deployment-wide events"`
	PageSize     int32  `json:"page_size,omitempty" jsonschema:"maximum events to return"`
	PageToken    string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// EventSummary is one journal entry.
type EventSummary struct {
	Seq         uint64 `json:"seq" jsonschema:"journal sequence"`
	GameID      string `json:"game_id,omitempty" jsonschema:"game identifier"`
	Type        string `json:"type" jsonschema:"event type"`
	Tick        uint64 `json:"tick" jsonschema:"logical clock tick"`
	Timestamp   string `json:"timestamp,omitempty" jsonschema:"RFC3339 wall time"`
	ActorID     string `json:"actor_id" jsonschema:"caller that caused the event"`
	RequestID   string `json:"request_id,omitempty" jsonschema:"request correlation id"`
	PayloadJSON string `json:"payload_json,omitempty" jsonschema:"event payload"`
	ChainHash   string `json:"chain_hash" jsonschema:"journal integrity hash"`
}

// GameEventsResult is the game_events tool output.
type GameEventsResult struct {
	Events        []EventSummary `json:"events" jsonschema:"journal entries in sequence order"`
	NextPageToken string         `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// GameGetTool defines the game_get tool.
func GameGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_get",
		Description: "Returns a craps game with its faders, pot, and potential shooter payout",
	}
}

// GameListTool defines the game_list tool.
func GameListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_list",
		Description: "Lists craps games in a deployment, optionally filtered (e.g. phase = \"ROLLING\")",
	}
}

// GameEventsTool defines the game_events tool.
func GameEventsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_events",
		Description: "Lists journal events for a deployment or a single game",
	}
}

// GameGetHandler reads one game.
func GameGetHandler(client GameClient) mcp.ToolHandlerFor[GameGetInput, GameGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameGetInput) (*mcp.CallToolResult, GameGetResult, error) {
		if err := requireInput(input.DeploymentID, "deployment_id"); err != nil {
			return nil, GameGetResult{}, err
		}
		if err := requireInput(input.GameID, "game_id"); err != nil {
			return nil, GameGetResult{}, err
		}
		callContext, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, GameGetResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer callContext.Cancel()

		response, err := client.GetGame(callContext.RunCtx, &crapsv1.GameRequest{
			DeploymentID: strings.TrimSpace(input.DeploymentID),
			GameID:       strings.TrimSpace(input.GameID),
		})
		if err != nil {
			return nil, GameGetResult{}, fmt.Errorf("game get failed: %w", err)
		}
		if response == nil || response.Game == nil {
			return nil, GameGetResult{}, fmt.Errorf("game get response is missing")
		}
		return nil, GameGetResult{Game: gameSummary(response.Game)}, nil
	}
}

// GameListHandler lists games.
func GameListHandler(client GameClient) mcp.ToolHandlerFor[GameListInput, GameListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameListInput) (*mcp.CallToolResult, GameListResult, error) {
		if err := requireInput(input.DeploymentID, "deployment_id"); err != nil {
			return nil, GameListResult{}, err
		}
		callContext, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, GameListResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer callContext.Cancel()

		response, err := client.ListGames(callContext.RunCtx, &crapsv1.ListGamesRequest{
			DeploymentID: strings.TrimSpace(input.DeploymentID),
			PageSize:     input.PageSize,
			PageToken:    input.PageToken,
			Filter:       input.Filter,
		})
		if err != nil {
			return nil, GameListResult{}, fmt.Errorf("game list failed: %w", err)
		}
		if response == nil {
			return nil, GameListResult{}, fmt.Errorf("game list response is missing")
		}
		result := GameListResult{
			Games:         make([]GameSummary, 0, len(response.Games)),
			NextPageToken: response.NextPageToken,
		}
		for _, game := range response.Games {
			if game == nil {
				continue
			}
			result.Games = append(result.Games, gameSummary(game))
		}
		return nil, result, nil
	}
}

// GameEventsHandler lists journal events.
func GameEventsHandler(client GameClient) mcp.ToolHandlerFor[GameEventsInput, GameEventsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameEventsInput) (*mcp.CallToolResult, GameEventsResult, error) {
		if err := requireInput(input.DeploymentID, "deployment_id"); err != nil {
			return nil, GameEventsResult{}, err
		}
		callContext, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, GameEventsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer callContext.Cancel()

		response, err := client.ListGameEvents(callContext.RunCtx, &crapsv1.ListGameEventsRequest{
			DeploymentID: strings.TrimSpace(input.DeploymentID),
			GameID:       strings.TrimSpace(input.GameID),
			PageSize:     input.PageSize,
			PageToken:    input.PageToken,
		})
		if err != nil {
			return nil, GameEventsResult{}, fmt.Errorf("game events failed: %w", err)
		}
		if response == nil {
			return nil, GameEventsResult{}, fmt.Errorf("game events response is missing")
		}
		result := GameEventsResult{
			Events:        make([]EventSummary, 0, len(response.Events)),
			NextPageToken: response.NextPageToken,
		}
		for _, event := range response.Events {
			if event == nil {
				continue
			}
			result.Events = append(result.Events, EventSummary{
				Seq:         event.Seq,
				GameID:      event.GameID,
				Type:        event.Type,
				Tick:        event.Tick,
				Timestamp:   formatTimestamp(event.Timestamp),
				ActorID:     event.ActorID,
				RequestID:   event.RequestID,
				PayloadJSON: event.PayloadJSON,
				ChainHash:   event.ChainHash,
			})
		}
		return nil, result, nil
	}
}

func gameSummary(game *crapsv1.Game) GameSummary {
	summary := GameSummary{
		DeploymentID:           game.DeploymentID,
		GameID:                 game.GameID,
		Shooter:                game.Shooter,
		Phase:                  game.Phase,
		ShooterStake:           game.ShooterStake,
		TotalFaderStake:        game.TotalFaderStake,
		TotalPot:               game.TotalPot,
		TaxAmount:              game.TaxAmount,
		PotentialShooterPayout: game.PotentialShooterPayout,
		Point:                  game.Point,
		PendingRollToken:       game.PendingRollToken,
		WinnerIsShooter:        game.WinnerIsShooter,
		Forfeited:              game.Forfeited,
		RollRetries:            game.RollRetries,
		FaderCapacity:          game.FaderCapacity,
		Faders:                 make([]FaderSummary, 0, len(game.Faders)),
		ShooterPayout:          game.ShooterPayout,
		ShooterClaimed:         game.ShooterClaimed,
		CreatedAt:              formatTimestamp(game.CreatedAt),
		UpdatedAt:              formatTimestamp(game.UpdatedAt),
	}
	if game.LastDie1 != 0 {
		summary.LastDice = []uint32{game.LastDie1, game.LastDie2}
	}
	for _, fader := range game.Faders {
		summary.Faders = append(summary.Faders, FaderSummary{
			Slot:    fader.Slot,
			FaderID: fader.FaderID,
			Stake:   fader.Stake,
			Payout:  fader.Payout,
			Claimed: fader.Claimed,
		})
	}
	return summary
}

func requireInput(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
