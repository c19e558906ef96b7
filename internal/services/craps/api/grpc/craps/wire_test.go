package craps

import (
	"context"
	"math"
	"net"
	"testing"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/oracle"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func dialBufconn(t *testing.T, svc *Service) crapsv1.CrapsServiceClient {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(grpcmeta.UnaryServerInterceptor(nil)))
	crapsv1.RegisterCrapsServiceServer(server, svc)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return crapsv1.NewCrapsServiceClient(conn)
}

func TestWireCarriesActorAndFullWidthEntropy(t *testing.T) {
	h := newServiceHarness(t)
	client := dialBufconn(t, h.svc)
	as := func(actorID string) context.Context {
		return grpcmeta.OutgoingContext(context.Background(), actorID, "inv-1")
	}

	_, err := client.CreateGame(context.Background(), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 1})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("anonymous create code = %v, want Unauthenticated", status.Code(err))
	}

	_, err = client.InitializeDeployment(as("admin"), &crapsv1.InitializeDeploymentRequest{
		DeploymentID: "dep-1",
		Config: crapsv1.DeploymentConfig{
			OracleProgram:    "prog",
			OracleSigner:     "signer",
			Treasury:         "treasury",
			JoinTimeoutTicks: 100,
			RollTimeoutTicks: 100,
			MaxFaders:        1,
		},
	})
	if err != nil {
		t.Fatalf("initialize deployment: %v", err)
	}
	for _, account := range []string{"shooter", "f1"} {
		if _, err := client.FundAccount(as("admin"), &crapsv1.FundAccountRequest{DeploymentID: "dep-1", Account: account, Amount: 10}); err != nil {
			t.Fatalf("fund %s: %v", account, err)
		}
	}
	if _, err := client.CreateGame(as("shooter"), &crapsv1.CreateGameRequest{DeploymentID: "dep-1", Stake: 5}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := client.JoinGame(as("f1"), &crapsv1.JoinGameRequest{DeploymentID: "dep-1", GameID: "g-1", Stake: 5}); err != nil {
		t.Fatalf("join game: %v", err)
	}
	if _, err := client.RequestRoll(as("shooter"), &crapsv1.RequestRollRequest{DeploymentID: "dep-1", GameID: "g-1"}); err != nil {
		t.Fatalf("request roll: %v", err)
	}

	entropy := uint64(math.MaxUint64 - 3)
	consumed, err := client.ConsumeRandomness(context.Background(), &crapsv1.ConsumeRandomnessRequest{
		DeploymentID: "dep-1",
		GameID:       "g-1",
		Token:        "tok-1",
		Entropy:      entropy,
		Attestation:  h.attest(t, "tok-1", entropy),
	})
	if err != nil {
		t.Fatalf("consume randomness: %v", err)
	}
	want := oracle.Dice(entropy)
	if consumed.Roll == nil || consumed.Roll.Die1 != uint32(want.Die1) || consumed.Roll.Die2 != uint32(want.Die2) {
		t.Fatalf("roll = %+v, want dice %d/%d", consumed.Roll, want.Die1, want.Die2)
	}

	events, err := client.ListGameEvents(context.Background(), &crapsv1.ListGameEventsRequest{DeploymentID: "dep-1", GameID: "g-1", PageSize: 1})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events.Events) != 1 || events.NextPageToken == "" {
		t.Fatalf("events = %d token %q, want one event and a token", len(events.Events), events.NextPageToken)
	}
	if events.Events[0].RequestID == "" {
		t.Fatal("expected journal to record the request id")
	}
}
