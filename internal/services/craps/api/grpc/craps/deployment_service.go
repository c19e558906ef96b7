package craps

import (
	"context"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/deployment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InitializeDeployment creates a deployment. The caller becomes its authority.
func (s *Service) InitializeDeployment(ctx context.Context, in *crapsv1.InitializeDeploymentRequest) (*crapsv1.DeploymentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "initialize deployment request is required")
	}
	return s.deploymentCommand(ctx, in.DeploymentID, deployment.CommandTypeInitialize, configPayloadFromProto(in.Config))
}

// UpdateDeployment replaces the tunable config. Authority only.
func (s *Service) UpdateDeployment(ctx context.Context, in *crapsv1.UpdateDeploymentRequest) (*crapsv1.DeploymentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "update deployment request is required")
	}
	return s.deploymentCommand(ctx, in.DeploymentID, deployment.CommandTypeUpdate, configPayloadFromProto(in.Config))
}

// SetDeploymentFrozen toggles the freeze flag. Authority only.
func (s *Service) SetDeploymentFrozen(ctx context.Context, in *crapsv1.SetDeploymentFrozenRequest) (*crapsv1.DeploymentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "set deployment frozen request is required")
	}
	return s.deploymentCommand(ctx, in.DeploymentID, deployment.CommandTypeSetFrozen, deployment.FrozenSetPayload{Frozen: in.Frozen})
}

// GetDeployment returns a deployment record.
func (s *Service) GetDeployment(ctx context.Context, in *crapsv1.GetDeploymentRequest) (*crapsv1.DeploymentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get deployment request is required")
	}
	deploymentID, err := requireID(in.DeploymentID, "deployment id")
	if err != nil {
		return nil, err
	}
	state, err := s.stores.Deployment.GetDeployment(ctx, deploymentID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &crapsv1.DeploymentResponse{Deployment: deploymentToProto(state)}, nil
}

// FundAccount mints amount into account. Authority only.
func (s *Service) FundAccount(ctx context.Context, in *crapsv1.FundAccountRequest) (*crapsv1.BalanceResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "fund account request is required")
	}
	deploymentID, err := requireID(in.DeploymentID, "deployment id")
	if err != nil {
		return nil, err
	}
	account, err := requireID(in.Account, "account")
	if err != nil {
		return nil, err
	}
	_, err = s.executeCommand(ctx, command.Command{
		DeploymentID: deploymentID,
		Type:         deployment.CommandTypeFundAccount,
	}, deployment.FundAccountPayload{Account: account, Amount: in.Amount})
	if err != nil {
		return nil, err
	}
	return s.balance(ctx, account)
}

// GetBalance returns the ledger balance of an account.
func (s *Service) GetBalance(ctx context.Context, in *crapsv1.GetBalanceRequest) (*crapsv1.BalanceResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get balance request is required")
	}
	account, err := requireID(in.Account, "account")
	if err != nil {
		return nil, err
	}
	return s.balance(ctx, account)
}

func (s *Service) balance(ctx context.Context, account string) (*crapsv1.BalanceResponse, error) {
	balance, err := s.stores.Ledger.Balance(ctx, account)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &crapsv1.BalanceResponse{Account: account, Balance: balance}, nil
}

func (s *Service) deploymentCommand(ctx context.Context, deploymentID string, cmdType command.Type, payload any) (*crapsv1.DeploymentResponse, error) {
	deploymentID = strings.TrimSpace(deploymentID)
	if deploymentID == "" {
		return nil, status.Error(codes.InvalidArgument, "deployment id is required")
	}
	result, err := s.executeCommand(ctx, command.Command{DeploymentID: deploymentID, Type: cmdType}, payload)
	if err != nil {
		return nil, err
	}
	return &crapsv1.DeploymentResponse{Deployment: deploymentToProto(result.Deployment)}, nil
}
