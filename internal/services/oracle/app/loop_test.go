package app

import (
	"context"
	"errors"
	"testing"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	oracledomain "github.com/louisbranch/crapshoot/internal/services/oracle/domain"
	"google.golang.org/grpc"
)

type fakeGameLister struct {
	pages    map[string]*crapsv1.ListGamesResponse
	requests []*crapsv1.ListGamesRequest
	err      error
}

func (f *fakeGameLister) ListGames(ctx context.Context, in *crapsv1.ListGamesRequest, opts ...grpc.CallOption) (*crapsv1.ListGamesResponse, error) {
	f.requests = append(f.requests, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[in.PageToken], nil
}

type fakeDeliverer struct {
	calls map[string]int
	errs  map[string]error
}

func (f *fakeDeliverer) Deliver(ctx context.Context, g *crapsv1.Game) (*crapsv1.Roll, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[g.GameID]++
	if err := f.errs[g.GameID]; err != nil {
		return nil, err
	}
	return &crapsv1.Roll{Die1: 3, Die2: 4, Sum: 7, Outcome: "SHOOTER_WINS"}, nil
}

func rolling(gameID string) *crapsv1.Game {
	return &crapsv1.Game{DeploymentID: "dep-1", GameID: gameID, Phase: "ROLLING", PendingRollToken: "tok-" + gameID}
}

func TestPollOnceWalksEveryPage(t *testing.T) {
	lister := &fakeGameLister{pages: map[string]*crapsv1.ListGamesResponse{
		"":    {Games: []*crapsv1.Game{rolling("g-1")}, NextPageToken: "g-1"},
		"g-1": {Games: []*crapsv1.Game{rolling("g-2")}},
	}}
	deliverer := &fakeDeliverer{}
	loop := New(lister, deliverer, Config{DeploymentID: "dep-1"}, func(string, ...any) {})

	delivered, err := loop.PollOnce(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if len(lister.requests) != 2 {
		t.Fatalf("list requests = %d, want 2", len(lister.requests))
	}
	if got := lister.requests[0].Filter; got != pendingRollsFilter {
		t.Fatalf("filter = %q, want %q", got, pendingRollsFilter)
	}
}

func TestPollOnceAbandonsPermanentFailures(t *testing.T) {
	lister := &fakeGameLister{pages: map[string]*crapsv1.ListGamesResponse{
		"": {Games: []*crapsv1.Game{rolling("g-1"), rolling("g-2")}},
	}}
	deliverer := &fakeDeliverer{errs: map[string]error{
		"g-1": oracledomain.Permanent(errors.New("signer mismatch")),
		"g-2": errors.New("unavailable"),
	}}
	loop := New(lister, deliverer, Config{DeploymentID: "dep-1"}, func(string, ...any) {})

	for i := 0; i < 2; i++ {
		if _, err := loop.PollOnce(context.Background()); err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
	}
	if deliverer.calls["g-1"] != 1 {
		t.Fatalf("g-1 calls = %d, want 1 after permanent failure", deliverer.calls["g-1"])
	}
	if deliverer.calls["g-2"] != 2 {
		t.Fatalf("g-2 calls = %d, want 2 for retryable failure", deliverer.calls["g-2"])
	}
}

func TestPollOnceForgetsResolvedAbandonedTokens(t *testing.T) {
	lister := &fakeGameLister{pages: map[string]*crapsv1.ListGamesResponse{
		"": {Games: []*crapsv1.Game{rolling("g-1"), rolling("g-2")}},
	}}
	deliverer := &fakeDeliverer{errs: map[string]error{
		"g-1": oracledomain.Permanent(errors.New("signer mismatch")),
		"g-2": oracledomain.Permanent(errors.New("signer mismatch")),
	}}
	loop := New(lister, deliverer, Config{DeploymentID: "dep-1"}, func(string, ...any) {})

	if _, err := loop.PollOnce(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(loop.abandoned) != 2 {
		t.Fatalf("abandoned = %d, want 2", len(loop.abandoned))
	}

	lister.pages[""] = &crapsv1.ListGamesResponse{Games: []*crapsv1.Game{rolling("g-2")}}
	if _, err := loop.PollOnce(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if _, ok := loop.abandoned["tok-g-1"]; ok {
		t.Fatal("expected resolved token to be forgotten")
	}
	if _, ok := loop.abandoned["tok-g-2"]; !ok {
		t.Fatal("expected pending token to stay abandoned")
	}

	lister.err = errors.New("down")
	if _, err := loop.PollOnce(context.Background()); err == nil {
		t.Fatal("expected list error")
	}
	if len(loop.abandoned) != 1 {
		t.Fatalf("abandoned after failed scan = %d, want 1", len(loop.abandoned))
	}
	if deliverer.calls["g-2"] != 1 {
		t.Fatalf("g-2 calls = %d, want 1", deliverer.calls["g-2"])
	}
}

func TestPollOnceReturnsListError(t *testing.T) {
	loop := New(&fakeGameLister{err: errors.New("down")}, &fakeDeliverer{}, Config{DeploymentID: "dep-1"}, func(string, ...any) {})
	if _, err := loop.PollOnce(context.Background()); err == nil {
		t.Fatal("expected list error")
	}
}

func TestRunRequiresConfiguration(t *testing.T) {
	if err := New(nil, nil, Config{}, nil).Run(context.Background()); err == nil {
		t.Fatal("expected error for unconfigured loop")
	}
	loop := New(&fakeGameLister{}, &fakeDeliverer{}, Config{}, nil)
	if err := loop.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing deployment id")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lister := &fakeGameLister{pages: map[string]*crapsv1.ListGamesResponse{"": {}}}
	loop := New(lister, &fakeDeliverer{}, Config{DeploymentID: "dep-1"}, func(string, ...any) {})
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsMissingAddress(t *testing.T) {
	if err := Run(context.Background(), RuntimeConfig{}); err == nil {
		t.Fatal("expected error for missing craps address")
	}
}
