package server

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"testing"
	"time"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestServer_GameRoundTripOverGRPC(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	t.Setenv("CRAPSHOOT_DB_PATH", t.TempDir()+"/craps.db")
	t.Setenv("CRAPSHOOT_ORACLE_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pub))
	t.Setenv("CRAPSHOOT_ORACLE_ISSUER_ALLOWLIST", "signer")

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial craps server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})

	client := crapsv1.NewCrapsServiceClient(conn)
	as := func(actorID string) context.Context {
		return grpcmeta.OutgoingContext(context.Background(), actorID, "")
	}

	var header metadata.MD
	_, err = client.InitializeDeployment(as("admin"), &crapsv1.InitializeDeploymentRequest{
		DeploymentID: "dep-1",
		Config: crapsv1.DeploymentConfig{
			OracleProgram:    "prog",
			OracleSigner:     "signer",
			Treasury:         "treasury",
			TaxBps:           0,
			JoinTimeoutTicks: 3600,
			RollTimeoutTicks: 3600,
			MaxFaders:        4,
		},
	}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("initialize deployment: %v", err)
	}
	if got := header.Get(grpcmeta.RequestIDHeader); len(got) == 0 || got[0] == "" {
		t.Fatal("expected request id response header")
	}

	for _, account := range []string{"shooter", "fader"} {
		if _, err := client.FundAccount(as("admin"), &crapsv1.FundAccountRequest{DeploymentID: "dep-1", Account: account, Amount: 50}); err != nil {
			t.Fatalf("fund %s: %v", account, err)
		}
	}
	if _, err := client.CreateGame(as("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 20}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := client.JoinGame(as("fader"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 20}); err != nil {
		t.Fatalf("join game: %v", err)
	}
	rolled, err := client.RequestRoll(as("shooter"), &crapsv1.RequestRollRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("request roll: %v", err)
	}
	token := rolled.Game.GetPendingRollToken()
	if token == "" {
		t.Fatal("expected a server-drawn roll token")
	}

	// Entropy 0 decodes to snake eyes.
	attestation, err := oracleauth.Sign(oracleauth.Delivery{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        token,
		Entropy:      0,
	}, oracleauth.SignerConfig{Key: priv, Identity: oracleauth.Identity{Signer: "signer", Program: "prog"}})
	if err != nil {
		t.Fatalf("sign attestation: %v", err)
	}
	consumed, err := client.ConsumeRandomness(context.Background(), &crapsv1.ConsumeRandomnessRequest{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        token,
		Entropy:      0,
		Attestation:  attestation,
	})
	if err != nil {
		t.Fatalf("consume randomness: %v", err)
	}
	if consumed.Roll == nil || consumed.Roll.Sum != 2 || consumed.Game.GetPhase() != "SETTLED" || consumed.Game.WinnerIsShooter {
		t.Fatalf("roll/game = %+v/%+v, want a craps loss", consumed.Roll, consumed.Game)
	}

	claimed, err := client.ClaimPayout(as("fader"), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if err != nil {
		t.Fatalf("claim payout: %v", err)
	}
	if claimed.Amount != 40 {
		t.Fatalf("claim amount = %d, want 40", claimed.Amount)
	}

	_, err = client.ClaimPayout(as("fader"), &crapsv1.GameRequest{DeploymentID: "dep-1", GameID: "g-1"})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("second claim code = %v, want FailedPrecondition", status.Code(err))
	}

	balance, err := client.GetBalance(context.Background(), &crapsv1.GetBalanceRequest{Account: "fader"})
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Balance != 70 {
		t.Fatalf("fader balance = %d, want 70", balance.Balance)
	}
}
