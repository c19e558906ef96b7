package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type fakeGameClient struct {
	getResp    *crapsv1.GameResponse
	getErr     error
	listResp   *crapsv1.ListGamesResponse
	listErr    error
	eventsResp *crapsv1.ListGameEventsResponse
	eventsErr  error

	lastGet    *crapsv1.GameRequest
	lastList   *crapsv1.ListGamesRequest
	lastEvents *crapsv1.ListGameEventsRequest
	lastMD     metadata.MD
}

func (f *fakeGameClient) GetGame(ctx context.Context, in *crapsv1.GameRequest, _ ...grpc.CallOption) (*crapsv1.GameResponse, error) {
	f.lastGet = in
	f.lastMD, _ = metadata.FromOutgoingContext(ctx)
	return f.getResp, f.getErr
}

func (f *fakeGameClient) ListGames(_ context.Context, in *crapsv1.ListGamesRequest, _ ...grpc.CallOption) (*crapsv1.ListGamesResponse, error) {
	f.lastList = in
	return f.listResp, f.listErr
}

func (f *fakeGameClient) ListGameEvents(_ context.Context, in *crapsv1.ListGameEventsRequest, _ ...grpc.CallOption) (*crapsv1.ListGameEventsResponse, error) {
	f.lastEvents = in
	return f.eventsResp, f.eventsErr
}

type fakeDeploymentClient struct {
	resp *crapsv1.DeploymentResponse
	err  error
}

func (f *fakeDeploymentClient) GetDeployment(context.Context, *crapsv1.GetDeploymentRequest, ...grpc.CallOption) (*crapsv1.DeploymentResponse, error) {
	return f.resp, f.err
}

func TestGameGetHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		client := &fakeGameClient{getResp: &crapsv1.GameResponse{Game: &crapsv1.Game{
			DeploymentID: "dep-1",
			GameID:       "g-1",
			Shooter:      "shooter",
			Phase:        "POINT",
			Point:        4,
			LastDie1:     3,
			LastDie2:     1,
			Faders:       []crapsv1.Fader{{Slot: 0, FaderID: "f1", Stake: 40}},
			CreatedAt:    created,
		}}}
		handler := GameGetHandler(client)
		_, result, err := handler(context.Background(), nil, GameGetInput{DeploymentID: " dep-1 ", GameID: "g-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.lastGet.DeploymentID != "dep-1" {
			t.Errorf("expected trimmed deployment id, got %q", client.lastGet.DeploymentID)
		}
		if got := grpcmeta.FirstMetadataValue(client.lastMD, grpcmeta.ActorIDHeader); got != AgentActorID {
			t.Errorf("expected actor header %q, got %q", AgentActorID, got)
		}
		if got := grpcmeta.FirstMetadataValue(client.lastMD, grpcmeta.InvocationIDHeader); got == "" {
			t.Error("expected invocation id header")
		}
		if len(result.Game.LastDice) != 2 || result.Game.LastDice[0] != 3 {
			t.Errorf("expected last dice [3 1], got %v", result.Game.LastDice)
		}
		if len(result.Game.Faders) != 1 || result.Game.Faders[0].FaderID != "f1" {
			t.Errorf("expected fader f1, got %+v", result.Game.Faders)
		}
		if result.Game.CreatedAt != "2026-01-02T03:04:05Z" {
			t.Errorf("expected RFC3339 created_at, got %q", result.Game.CreatedAt)
		}
		if result.Game.UpdatedAt != "" {
			t.Errorf("expected empty updated_at, got %q", result.Game.UpdatedAt)
		}
	})

	t.Run("missing game_id", func(t *testing.T) {
		handler := GameGetHandler(&fakeGameClient{})
		_, _, err := handler(context.Background(), nil, GameGetInput{DeploymentID: "dep-1"})
		if err == nil {
			t.Fatal("expected error for missing game_id")
		}
	})

	t.Run("gRPC error", func(t *testing.T) {
		handler := GameGetHandler(&fakeGameClient{getErr: fmt.Errorf("boom")})
		_, _, err := handler(context.Background(), nil, GameGetInput{DeploymentID: "dep-1", GameID: "g-1"})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("nil response", func(t *testing.T) {
		handler := GameGetHandler(&fakeGameClient{})
		_, _, err := handler(context.Background(), nil, GameGetInput{DeploymentID: "dep-1", GameID: "g-1"})
		if err == nil {
			t.Fatal("expected error for nil response")
		}
	})
}

func TestGameListHandler(t *testing.T) {
	t.Run("passes filter and paging", func(t *testing.T) {
		client := &fakeGameClient{listResp: &crapsv1.ListGamesResponse{
			Games:         []*crapsv1.Game{{GameID: "g-1"}, nil, {GameID: "g-2"}},
			NextPageToken: "next",
		}}
		handler := GameListHandler(client)
		_, result, err := handler(context.Background(), nil, GameListInput{
			DeploymentID: "dep-1",
			Filter:       `phase = "ROLLING"`,
			PageSize:     2,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.lastList.Filter != `phase = "ROLLING"` || client.lastList.PageSize != 2 {
			t.Errorf("unexpected request: %+v", client.lastList)
		}
		if len(result.Games) != 2 || result.NextPageToken != "next" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("missing deployment_id", func(t *testing.T) {
		handler := GameListHandler(&fakeGameClient{})
		_, _, err := handler(context.Background(), nil, GameListInput{})
		if err == nil {
			t.Fatal("expected error for missing deployment_id")
		}
	})

	t.Run("nil response", func(t *testing.T) {
		handler := GameListHandler(&fakeGameClient{})
		_, _, err := handler(context.Background(), nil, GameListInput{DeploymentID: "dep-1"})
		if err == nil {
			t.Fatal("expected error for nil response")
		}
	})
}

func TestGameEventsHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeGameClient{eventsResp: &crapsv1.ListGameEventsResponse{
			Events: []*crapsv1.Event{
				{Seq: 1, GameID: "g-1", Type: "game.created", PayloadJSON: `{"stake":60}`, ChainHash: "abc"},
			},
		}}
		handler := GameEventsHandler(client)
		_, result, err := handler(context.Background(), nil, GameEventsInput{DeploymentID: "dep-1", GameID: "g-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.lastEvents.GameID != "g-1" {
			t.Errorf("expected game id g-1, got %q", client.lastEvents.GameID)
		}
		if len(result.Events) != 1 || result.Events[0].PayloadJSON != `{"stake":60}` {
			t.Errorf("unexpected events: %+v", result.Events)
		}
		if result.Events[0].Timestamp != "" {
			t.Errorf("expected empty timestamp, got %q", result.Events[0].Timestamp)
		}
	})

	t.Run("gRPC error", func(t *testing.T) {
		handler := GameEventsHandler(&fakeGameClient{eventsErr: fmt.Errorf("boom")})
		_, _, err := handler(context.Background(), nil, GameEventsInput{DeploymentID: "dep-1"})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDeploymentGetHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeDeploymentClient{resp: &crapsv1.DeploymentResponse{Deployment: &crapsv1.Deployment{
			DeploymentID: "dep-1",
			Authority:    "admin",
			Frozen:       true,
			Config:       crapsv1.DeploymentConfig{Treasury: "house", TaxBps: 250, MaxFaders: 4},
		}}}
		handler := DeploymentGetHandler(client)
		_, result, err := handler(context.Background(), nil, DeploymentGetInput{DeploymentID: "dep-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Frozen || result.Treasury != "house" || result.TaxBps != 250 || result.MaxFaders != 4 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("missing deployment_id", func(t *testing.T) {
		handler := DeploymentGetHandler(&fakeDeploymentClient{})
		_, _, err := handler(context.Background(), nil, DeploymentGetInput{DeploymentID: "  "})
		if err == nil {
			t.Fatal("expected error for missing deployment_id")
		}
	})

	t.Run("nil response", func(t *testing.T) {
		handler := DeploymentGetHandler(&fakeDeploymentClient{})
		_, _, err := handler(context.Background(), nil, DeploymentGetInput{DeploymentID: "dep-1"})
		if err == nil {
			t.Fatal("expected error for nil response")
		}
	})
}
