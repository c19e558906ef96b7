package crapsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "crapshoot.craps.v1.CrapsService"

const (
	CrapsService_InitializeDeployment_FullMethodName = "/" + ServiceName + "/InitializeDeployment"
	CrapsService_UpdateDeployment_FullMethodName     = "/" + ServiceName + "/UpdateDeployment"
	CrapsService_SetDeploymentFrozen_FullMethodName  = "/" + ServiceName + "/SetDeploymentFrozen"
	CrapsService_GetDeployment_FullMethodName        = "/" + ServiceName + "/GetDeployment"
	CrapsService_FundAccount_FullMethodName          = "/" + ServiceName + "/FundAccount"
	CrapsService_GetBalance_FullMethodName           = "/" + ServiceName + "/GetBalance"
	CrapsService_CreateGame_FullMethodName           = "/" + ServiceName + "/CreateGame"
	CrapsService_JoinGame_FullMethodName             = "/" + ServiceName + "/JoinGame"
	CrapsService_RequestRoll_FullMethodName          = "/" + ServiceName + "/RequestRoll"
	CrapsService_RetryRoll_FullMethodName            = "/" + ServiceName + "/RetryRoll"
	CrapsService_ConsumeRandomness_FullMethodName    = "/" + ServiceName + "/ConsumeRandomness"
	CrapsService_CancelGame_FullMethodName           = "/" + ServiceName + "/CancelGame"
	CrapsService_ForfeitGame_FullMethodName          = "/" + ServiceName + "/ForfeitGame"
	CrapsService_ClaimPayout_FullMethodName          = "/" + ServiceName + "/ClaimPayout"
	CrapsService_WithdrawCanceled_FullMethodName     = "/" + ServiceName + "/WithdrawCanceled"
	CrapsService_CloseGame_FullMethodName            = "/" + ServiceName + "/CloseGame"
	CrapsService_GetGame_FullMethodName              = "/" + ServiceName + "/GetGame"
	CrapsService_ListGames_FullMethodName            = "/" + ServiceName + "/ListGames"
	CrapsService_ListGameEvents_FullMethodName       = "/" + ServiceName + "/ListGameEvents"
)

// CrapsServiceServer is the server API for the craps service.
type CrapsServiceServer interface {
	InitializeDeployment(context.Context, *InitializeDeploymentRequest) (*DeploymentResponse, error)
	UpdateDeployment(context.Context, *UpdateDeploymentRequest) (*DeploymentResponse, error)
	SetDeploymentFrozen(context.Context, *SetDeploymentFrozenRequest) (*DeploymentResponse, error)
	GetDeployment(context.Context, *GetDeploymentRequest) (*DeploymentResponse, error)
	FundAccount(context.Context, *FundAccountRequest) (*BalanceResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error)
	CreateGame(context.Context, *CreateGameRequest) (*GameResponse, error)
	JoinGame(context.Context, *JoinGameRequest) (*GameResponse, error)
	RequestRoll(context.Context, *RequestRollRequest) (*GameResponse, error)
	RetryRoll(context.Context, *RetryRollRequest) (*GameResponse, error)
	ConsumeRandomness(context.Context, *ConsumeRandomnessRequest) (*ConsumeRandomnessResponse, error)
	CancelGame(context.Context, *GameRequest) (*GameResponse, error)
	ForfeitGame(context.Context, *GameRequest) (*GameResponse, error)
	ClaimPayout(context.Context, *GameRequest) (*ClaimResponse, error)
	WithdrawCanceled(context.Context, *GameRequest) (*ClaimResponse, error)
	CloseGame(context.Context, *GameRequest) (*CloseGameResponse, error)
	GetGame(context.Context, *GameRequest) (*GameResponse, error)
	ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error)
	ListGameEvents(context.Context, *ListGameEventsRequest) (*ListGameEventsResponse, error)
}

// UnimplementedCrapsServiceServer returns Unimplemented for every method.
type UnimplementedCrapsServiceServer struct{}

func (UnimplementedCrapsServiceServer) InitializeDeployment(context.Context, *InitializeDeploymentRequest) (*DeploymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InitializeDeployment not implemented")
}

func (UnimplementedCrapsServiceServer) UpdateDeployment(context.Context, *UpdateDeploymentRequest) (*DeploymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDeployment not implemented")
}

func (UnimplementedCrapsServiceServer) SetDeploymentFrozen(context.Context, *SetDeploymentFrozenRequest) (*DeploymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetDeploymentFrozen not implemented")
}

func (UnimplementedCrapsServiceServer) GetDeployment(context.Context, *GetDeploymentRequest) (*DeploymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDeployment not implemented")
}

func (UnimplementedCrapsServiceServer) FundAccount(context.Context, *FundAccountRequest) (*BalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FundAccount not implemented")
}

func (UnimplementedCrapsServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}

func (UnimplementedCrapsServiceServer) CreateGame(context.Context, *CreateGameRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateGame not implemented")
}

func (UnimplementedCrapsServiceServer) JoinGame(context.Context, *JoinGameRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinGame not implemented")
}

func (UnimplementedCrapsServiceServer) RequestRoll(context.Context, *RequestRollRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestRoll not implemented")
}

func (UnimplementedCrapsServiceServer) RetryRoll(context.Context, *RetryRollRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RetryRoll not implemented")
}

func (UnimplementedCrapsServiceServer) ConsumeRandomness(context.Context, *ConsumeRandomnessRequest) (*ConsumeRandomnessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConsumeRandomness not implemented")
}

func (UnimplementedCrapsServiceServer) CancelGame(context.Context, *GameRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelGame not implemented")
}

func (UnimplementedCrapsServiceServer) ForfeitGame(context.Context, *GameRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ForfeitGame not implemented")
}

func (UnimplementedCrapsServiceServer) ClaimPayout(context.Context, *GameRequest) (*ClaimResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClaimPayout not implemented")
}

func (UnimplementedCrapsServiceServer) WithdrawCanceled(context.Context, *GameRequest) (*ClaimResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method WithdrawCanceled not implemented")
}

func (UnimplementedCrapsServiceServer) CloseGame(context.Context, *GameRequest) (*CloseGameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CloseGame not implemented")
}

func (UnimplementedCrapsServiceServer) GetGame(context.Context, *GameRequest) (*GameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGame not implemented")
}

func (UnimplementedCrapsServiceServer) ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGames not implemented")
}

func (UnimplementedCrapsServiceServer) ListGameEvents(context.Context, *ListGameEventsRequest) (*ListGameEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGameEvents not implemented")
}

// RegisterCrapsServiceServer registers srv on s.
func RegisterCrapsServiceServer(s grpc.ServiceRegistrar, srv CrapsServiceServer) {
	s.RegisterService(&CrapsService_ServiceDesc, srv)
}

// unaryHandler adapts one typed service method to a grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(CrapsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CrapsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CrapsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CrapsService_ServiceDesc is the grpc.ServiceDesc for the craps service.
var CrapsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CrapsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "InitializeDeployment",
			Handler:    unaryHandler(CrapsService_InitializeDeployment_FullMethodName, CrapsServiceServer.InitializeDeployment),
		},
		{
			MethodName: "UpdateDeployment",
			Handler:    unaryHandler(CrapsService_UpdateDeployment_FullMethodName, CrapsServiceServer.UpdateDeployment),
		},
		{
			MethodName: "SetDeploymentFrozen",
			Handler:    unaryHandler(CrapsService_SetDeploymentFrozen_FullMethodName, CrapsServiceServer.SetDeploymentFrozen),
		},
		{
			MethodName: "GetDeployment",
			Handler:    unaryHandler(CrapsService_GetDeployment_FullMethodName, CrapsServiceServer.GetDeployment),
		},
		{
			MethodName: "FundAccount",
			Handler:    unaryHandler(CrapsService_FundAccount_FullMethodName, CrapsServiceServer.FundAccount),
		},
		{
			MethodName: "GetBalance",
			Handler:    unaryHandler(CrapsService_GetBalance_FullMethodName, CrapsServiceServer.GetBalance),
		},
		{
			MethodName: "CreateGame",
			Handler:    unaryHandler(CrapsService_CreateGame_FullMethodName, CrapsServiceServer.CreateGame),
		},
		{
			MethodName: "JoinGame",
			Handler:    unaryHandler(CrapsService_JoinGame_FullMethodName, CrapsServiceServer.JoinGame),
		},
		{
			MethodName: "RequestRoll",
			Handler:    unaryHandler(CrapsService_RequestRoll_FullMethodName, CrapsServiceServer.RequestRoll),
		},
		{
			MethodName: "RetryRoll",
			Handler:    unaryHandler(CrapsService_RetryRoll_FullMethodName, CrapsServiceServer.RetryRoll),
		},
		{
			MethodName: "ConsumeRandomness",
			Handler:    unaryHandler(CrapsService_ConsumeRandomness_FullMethodName, CrapsServiceServer.ConsumeRandomness),
		},
		{
			MethodName: "CancelGame",
			Handler:    unaryHandler(CrapsService_CancelGame_FullMethodName, CrapsServiceServer.CancelGame),
		},
		{
			MethodName: "ForfeitGame",
			Handler:    unaryHandler(CrapsService_ForfeitGame_FullMethodName, CrapsServiceServer.ForfeitGame),
		},
		{
			MethodName: "ClaimPayout",
			Handler:    unaryHandler(CrapsService_ClaimPayout_FullMethodName, CrapsServiceServer.ClaimPayout),
		},
		{
			MethodName: "WithdrawCanceled",
			Handler:    unaryHandler(CrapsService_WithdrawCanceled_FullMethodName, CrapsServiceServer.WithdrawCanceled),
		},
		{
			MethodName: "CloseGame",
			Handler:    unaryHandler(CrapsService_CloseGame_FullMethodName, CrapsServiceServer.CloseGame),
		},
		{
			MethodName: "GetGame",
			Handler:    unaryHandler(CrapsService_GetGame_FullMethodName, CrapsServiceServer.GetGame),
		},
		{
			MethodName: "ListGames",
			Handler:    unaryHandler(CrapsService_ListGames_FullMethodName, CrapsServiceServer.ListGames),
		},
		{
			MethodName: "ListGameEvents",
			Handler:    unaryHandler(CrapsService_ListGameEvents_FullMethodName, CrapsServiceServer.ListGameEvents),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/craps/v1/service.go",
}
