package craps

import (
	"context"
	"crypto/ed25519"
	"path/filepath"
	"sync/atomic"
	"testing"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/requestctx"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage/sqlite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type serviceHarness struct {
	svc    *Service
	store  *sqlite.Store
	signer oracleauth.SignerConfig
}

func newServiceHarness(t *testing.T) serviceHarness {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "craps.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	var tick atomic.Uint64
	handler, err := engine.NewHandler(store, engine.ClockFunc(func() uint64 { return tick.Add(1) }))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	svc, err := NewService(handler, StoresFrom(store), oracleauth.VerifierConfig{Key: pub},
		WithGameIDGenerator(func() (string, error) { return "g-1", nil }),
		WithRollTokenGenerator(func() (string, error) { return "tok-1", nil }),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return serviceHarness{
		svc:   svc,
		store: store,
		signer: oracleauth.SignerConfig{
			Key:      priv,
			Identity: oracleauth.Identity{Signer: "signer", Program: "prog"},
		},
	}
}

func actorContext(actorID string) context.Context {
	return requestctx.WithActorID(context.Background(), actorID)
}

func (h serviceHarness) initialize(t *testing.T) {
	t.Helper()
	ctx := actorContext("admin")
	_, err := h.svc.InitializeDeployment(ctx, &crapsv1.InitializeDeploymentRequest{
		DeploymentID: "dep-1",
		Config: crapsv1.DeploymentConfig{
			OracleProgram:    "prog",
			OracleSigner:     "signer",
			Treasury:         "treasury",
			TaxBps:           100,
			JoinTimeoutTicks: 100,
			RollTimeoutTicks: 100,
			MaxFaders:        2,
			MaxRollRetries:   1,
		},
	})
	if err != nil {
		t.Fatalf("initialize deployment: %v", err)
	}
	for _, account := range []string{"shooter", "f1"} {
		resp, err := h.svc.FundAccount(ctx, &crapsv1.FundAccountRequest{DeploymentID: "dep-1", Account: account, Amount: 100})
		if err != nil {
			t.Fatalf("fund %s: %v", account, err)
		}
		if resp.Balance != 100 {
			t.Fatalf("balance %s = %d, want 100", account, resp.Balance)
		}
	}
}

func (h serviceHarness) attest(t *testing.T, token string, entropy uint64) string {
	t.Helper()
	attestation, err := oracleauth.Sign(oracleauth.Delivery{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        token,
		Entropy:      entropy,
	}, h.signer)
	if err != nil {
		t.Fatalf("sign attestation: %v", err)
	}
	return attestation
}

func assertStatus(t *testing.T, err error, want codes.Code) *status.Status {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v", want)
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status, got %T: %v", err, err)
	}
	if st.Code() != want {
		t.Fatalf("code = %v, want %v (%s)", st.Code(), want, st.Message())
	}
	return st
}

func reasonOf(st *status.Status) string {
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func TestNilRequestsAreRejected(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.svc.CreateGame(ctx, nil)
	assertStatus(t, err, codes.InvalidArgument)
	_, err = h.svc.ConsumeRandomness(ctx, nil)
	assertStatus(t, err, codes.InvalidArgument)
	_, err = h.svc.ListGames(ctx, nil)
	assertStatus(t, err, codes.InvalidArgument)
	_, err = h.svc.GetBalance(ctx, &crapsv1.GetBalanceRequest{})
	assertStatus(t, err, codes.InvalidArgument)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, Stores{}, oracleauth.VerifierConfig{}); err == nil {
		t.Fatal("expected error for missing domain")
	}
	handler := engine.Handler{}
	if _, err := NewService(handler, Stores{}, oracleauth.VerifierConfig{}); err == nil {
		t.Fatal("expected error for missing stores")
	}
}

func TestServiceShooterWinsAndCloses(t *testing.T) {
	h := newServiceHarness(t)
	h.initialize(t)

	created, err := h.svc.CreateGame(actorContext("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 60})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if created.Game.GameID != "g-1" || created.Game.Phase != "OPEN" {
		t.Fatalf("created = %s/%s, want g-1/OPEN", created.Game.GameID, created.Game.Phase)
	}

	joined, err := h.svc.JoinGame(actorContext("f1"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 40})
	if err != nil {
		t.Fatalf("join game: %v", err)
	}
	if joined.Game.TotalPot != 100 || joined.Game.PotentialShooterPayout != 99 {
		t.Fatalf("pot = %d preview = %d, want 100/99", joined.Game.TotalPot, joined.Game.PotentialShooterPayout)
	}
	if len(joined.Game.Faders) != 1 || joined.Game.Faders[0].FaderID != "f1" {
		t.Fatalf("faders = %+v, want f1", joined.Game.Faders)
	}

	rolling, err := h.svc.RequestRoll(actorContext("shooter"), &crapsv1.RequestRollRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("request roll: %v", err)
	}
	if rolling.Game.GetPhase() != "ROLLING" || rolling.Game.GetPendingRollToken() != "tok-1" {
		t.Fatalf("phase/token = %s/%s, want ROLLING/tok-1", rolling.Game.GetPhase(), rolling.Game.GetPendingRollToken())
	}

	// 15 decodes to dice 4 and 3.
	consumed, err := h.svc.ConsumeRandomness(context.Background(), &crapsv1.ConsumeRandomnessRequest{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        "tok-1",
		Entropy:      15,
		Attestation:  h.attest(t, "tok-1", 15),
	})
	if err != nil {
		t.Fatalf("consume randomness: %v", err)
	}
	if consumed.Roll == nil || consumed.Roll.Sum != 7 || consumed.Roll.Outcome != "SHOOTER_WINS" {
		t.Fatalf("roll = %+v, want a natural seven", consumed.Roll)
	}
	if consumed.Game.Phase != "SETTLED" || !consumed.Game.WinnerIsShooter || consumed.Game.ShooterPayout != 99 {
		t.Fatalf("game = %+v, want settled shooter win paying 99", consumed.Game)
	}

	claimed, err := h.svc.ClaimPayout(actorContext("shooter"), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("claim payout: %v", err)
	}
	if claimed.Amount != 99 || !claimed.Game.ShooterClaimed {
		t.Fatalf("claim = %d claimed=%v, want 99/true", claimed.Amount, claimed.Game.ShooterClaimed)
	}
	_, err = h.svc.ClaimPayout(actorContext("f1"), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	st := assertStatus(t, err, codes.FailedPrecondition)
	if reason := reasonOf(st); reason == "" {
		t.Fatal("expected ErrorInfo reason on rejection")
	}

	closed, err := h.svc.CloseGame(actorContext("shooter"), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("close game: %v", err)
	}
	if closed.Residual != 1 || closed.Treasury != "treasury" {
		t.Fatalf("close = %+v, want residual 1 to treasury", closed)
	}

	for account, want := range map[string]uint64{"shooter": 139, "f1": 60, "treasury": 1} {
		resp, err := h.svc.GetBalance(context.Background(), &crapsv1.GetBalanceRequest{Account: account})
		if err != nil {
			t.Fatalf("balance %s: %v", account, err)
		}
		if resp.Balance != want {
			t.Fatalf("balance %s = %d, want %d", account, resp.Balance, want)
		}
	}

	_, err = h.svc.GetGame(context.Background(), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	assertStatus(t, err, codes.NotFound)
	_, err = h.svc.CreateGame(actorContext("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 1})
	assertStatus(t, err, codes.AlreadyExists)

	events, err := h.svc.ListGameEvents(context.Background(), &crapsv1.ListGameEventsRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	var types []string
	for _, evt := range events.Events {
		types = append(types, evt.Type)
	}
	want := []string{
		string(game.EventTypeOpened),
		string(game.EventTypeFaderJoined),
		string(game.EventTypeRollRequested),
		string(game.EventTypeRollResolved),
		string(game.EventTypeSettled),
		string(game.EventTypePayoutClaimed),
		string(game.EventTypeClosed),
	}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event types = %v, want %v", types, want)
		}
	}
	if events.Events[3].ActorID != "signer" {
		t.Fatalf("roll resolved actor = %q, want signer", events.Events[3].ActorID)
	}

	journal, err := h.store.ListEvents(context.Background(), storage.ListEventsQuery{DeploymentID: "dep-1", PageSize: 200})
	if err != nil {
		t.Fatalf("list journal: %v", err)
	}
	if err := event.VerifyChain(journal.Events, ""); err != nil {
		t.Fatalf("verify chain: %v", err)
	}
}

func TestServiceRejectionsMapToStatus(t *testing.T) {
	h := newServiceHarness(t)
	h.initialize(t)

	_, err := h.svc.CreateGame(context.Background(), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 10})
	assertStatus(t, err, codes.Unauthenticated)

	if _, err := h.svc.CreateGame(actorContext("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 10}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	_, err = h.svc.JoinGame(actorContext("shooter"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 5})
	st := assertStatus(t, err, codes.PermissionDenied)
	if reason := reasonOf(st); reason != "AUTHORIZATION_SHOOTER_CANNOT_FADE" {
		t.Fatalf("reason = %q, want AUTHORIZATION_SHOOTER_CANNOT_FADE", reason)
	}

	_, err = h.svc.JoinGame(actorContext("broke"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 5})
	st = assertStatus(t, err, codes.FailedPrecondition)
	if reason := reasonOf(st); reason != "LEDGER_INSUFFICIENT_FUNDS" {
		t.Fatalf("reason = %q, want LEDGER_INSUFFICIENT_FUNDS", reason)
	}

	_, err = h.svc.ListGames(context.Background(), &crapsv1.ListGamesRequest{DeploymentID: "dep-1", Filter: "phase = \"NOPE\""})
	assertStatus(t, err, codes.InvalidArgument)

	_, err = h.svc.ListGameEvents(context.Background(), &crapsv1.ListGameEventsRequest{DeploymentID: "dep-1", PageToken: "abc"})
	assertStatus(t, err, codes.InvalidArgument)
}

func TestConsumeRandomnessRejectsTamperedDelivery(t *testing.T) {
	h := newServiceHarness(t)
	h.initialize(t)

	if _, err := h.svc.CreateGame(actorContext("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 10}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := h.svc.JoinGame(actorContext("f1"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 10}); err != nil {
		t.Fatalf("join game: %v", err)
	}
	if _, err := h.svc.RequestRoll(actorContext("shooter"), &crapsv1.RequestRollRequest{DeploymentID: "dep-1", GameID: "g-1"}); err != nil {
		t.Fatalf("request roll: %v", err)
	}

	_, err := h.svc.ConsumeRandomness(context.Background(), &crapsv1.ConsumeRandomnessRequest{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        "tok-1",
		Entropy:      16,
		Attestation:  h.attest(t, "tok-1", 15),
	})
	assertStatus(t, err, codes.Unauthenticated)

	resp, err := h.svc.GetGame(context.Background(), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if resp.Game.Phase != "ROLLING" {
		t.Fatalf("phase = %s, want ROLLING", resp.Game.Phase)
	}
}

func TestListGamesFiltersByPhase(t *testing.T) {
	h := newServiceHarness(t)
	h.initialize(t)

	ids := []string{"g-a", "g-b"}
	for _, gameID := range ids {
		if _, err := h.svc.CreateGame(actorContext("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", GameID: gameID, Stake: 10}); err != nil {
			t.Fatalf("create %s: %v", gameID, err)
		}
	}
	if _, err := h.svc.JoinGame(actorContext("f1"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-b", Stake: 10}); err != nil {
		t.Fatalf("join: %v", err)
	}

	resp, err := h.svc.ListGames(context.Background(), &crapsv1.ListGamesRequest{DeploymentID: "dep-1", Filter: "phase = \"READY_TO_ROLL\""})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(resp.Games) != 1 || resp.Games[0].GameID != "g-b" {
		t.Fatalf("games = %+v, want only g-b", resp.Games)
	}

	page, err := h.svc.ListGames(context.Background(), &crapsv1.ListGamesRequest{DeploymentID: "dep-1", PageSize: 1})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(page.Games) != 1 || page.NextPageToken == "" {
		t.Fatalf("first page = %d games token %q, want 1 and a token", len(page.Games), page.NextPageToken)
	}
	next, err := h.svc.ListGames(context.Background(), &crapsv1.ListGamesRequest{DeploymentID: "dep-1", PageSize: 1, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(next.Games) != 1 || next.Games[0].GameID == page.Games[0].GameID {
		t.Fatalf("second page = %+v, want the other game", next.Games)
	}
}
