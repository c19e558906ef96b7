package crapsv1

import (
	"context"

	"github.com/louisbranch/crapshoot/internal/platform/grpc/jsoncodec"
	"google.golang.org/grpc"
)

// CrapsServiceClient is the client API for the craps service.
type CrapsServiceClient interface {
	InitializeDeployment(ctx context.Context, in *InitializeDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error)
	UpdateDeployment(ctx context.Context, in *UpdateDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error)
	SetDeploymentFrozen(ctx context.Context, in *SetDeploymentFrozenRequest, opts ...grpc.CallOption) (*DeploymentResponse, error)
	GetDeployment(ctx context.Context, in *GetDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error)
	FundAccount(ctx context.Context, in *FundAccountRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	CreateGame(ctx context.Context, in *CreateGameRequest, opts ...grpc.CallOption) (*GameResponse, error)
	JoinGame(ctx context.Context, in *JoinGameRequest, opts ...grpc.CallOption) (*GameResponse, error)
	RequestRoll(ctx context.Context, in *RequestRollRequest, opts ...grpc.CallOption) (*GameResponse, error)
	RetryRoll(ctx context.Context, in *RetryRollRequest, opts ...grpc.CallOption) (*GameResponse, error)
	ConsumeRandomness(ctx context.Context, in *ConsumeRandomnessRequest, opts ...grpc.CallOption) (*ConsumeRandomnessResponse, error)
	CancelGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error)
	ForfeitGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error)
	ClaimPayout(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*ClaimResponse, error)
	WithdrawCanceled(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*ClaimResponse, error)
	CloseGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*CloseGameResponse, error)
	GetGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error)
	ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error)
	ListGameEvents(ctx context.Context, in *ListGameEventsRequest, opts ...grpc.CallOption) (*ListGameEventsResponse, error)
}

type crapsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCrapsServiceClient returns a client that encodes calls with the JSON codec.
func NewCrapsServiceClient(cc grpc.ClientConnInterface) CrapsServiceClient {
	return &crapsServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crapsServiceClient) InitializeDeployment(ctx context.Context, in *InitializeDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error) {
	return invoke[DeploymentResponse](ctx, c.cc, CrapsService_InitializeDeployment_FullMethodName, in, opts)
}

func (c *crapsServiceClient) UpdateDeployment(ctx context.Context, in *UpdateDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error) {
	return invoke[DeploymentResponse](ctx, c.cc, CrapsService_UpdateDeployment_FullMethodName, in, opts)
}

func (c *crapsServiceClient) SetDeploymentFrozen(ctx context.Context, in *SetDeploymentFrozenRequest, opts ...grpc.CallOption) (*DeploymentResponse, error) {
	return invoke[DeploymentResponse](ctx, c.cc, CrapsService_SetDeploymentFrozen_FullMethodName, in, opts)
}

func (c *crapsServiceClient) GetDeployment(ctx context.Context, in *GetDeploymentRequest, opts ...grpc.CallOption) (*DeploymentResponse, error) {
	return invoke[DeploymentResponse](ctx, c.cc, CrapsService_GetDeployment_FullMethodName, in, opts)
}

func (c *crapsServiceClient) FundAccount(ctx context.Context, in *FundAccountRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, CrapsService_FundAccount_FullMethodName, in, opts)
}

func (c *crapsServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, CrapsService_GetBalance_FullMethodName, in, opts)
}

func (c *crapsServiceClient) CreateGame(ctx context.Context, in *CreateGameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_CreateGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) JoinGame(ctx context.Context, in *JoinGameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_JoinGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) RequestRoll(ctx context.Context, in *RequestRollRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_RequestRoll_FullMethodName, in, opts)
}

func (c *crapsServiceClient) RetryRoll(ctx context.Context, in *RetryRollRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_RetryRoll_FullMethodName, in, opts)
}

func (c *crapsServiceClient) ConsumeRandomness(ctx context.Context, in *ConsumeRandomnessRequest, opts ...grpc.CallOption) (*ConsumeRandomnessResponse, error) {
	return invoke[ConsumeRandomnessResponse](ctx, c.cc, CrapsService_ConsumeRandomness_FullMethodName, in, opts)
}

func (c *crapsServiceClient) CancelGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_CancelGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) ForfeitGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_ForfeitGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) ClaimPayout(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*ClaimResponse, error) {
	return invoke[ClaimResponse](ctx, c.cc, CrapsService_ClaimPayout_FullMethodName, in, opts)
}

func (c *crapsServiceClient) WithdrawCanceled(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*ClaimResponse, error) {
	return invoke[ClaimResponse](ctx, c.cc, CrapsService_WithdrawCanceled_FullMethodName, in, opts)
}

func (c *crapsServiceClient) CloseGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*CloseGameResponse, error) {
	return invoke[CloseGameResponse](ctx, c.cc, CrapsService_CloseGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) GetGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	return invoke[GameResponse](ctx, c.cc, CrapsService_GetGame_FullMethodName, in, opts)
}

func (c *crapsServiceClient) ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error) {
	return invoke[ListGamesResponse](ctx, c.cc, CrapsService_ListGames_FullMethodName, in, opts)
}

func (c *crapsServiceClient) ListGameEvents(ctx context.Context, in *ListGameEventsRequest, opts ...grpc.CallOption) (*ListGameEventsResponse, error) {
	return invoke[ListGameEventsResponse](ctx, c.cc, CrapsService_ListGameEvents_FullMethodName, in, opts)
}
