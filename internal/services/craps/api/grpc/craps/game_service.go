package craps

import (
	"context"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreateGame opens a game with the caller as shooter and escrows the stake.
func (s *Service) CreateGame(ctx context.Context, in *crapsv1.CreateGameRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create game request is required")
	}
	deploymentID, err := requireID(in.DeploymentID, "deployment id")
	if err != nil {
		return nil, err
	}
	gameID := strings.TrimSpace(in.GameID)
	if gameID == "" {
		gameID, err = s.gameIDs()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "generate game id: %v", err)
		}
	}
	result, err := s.executeCommand(ctx, command.Command{
		DeploymentID: deploymentID,
		GameID:       gameID,
		Type:         game.CommandTypeOpen,
	}, game.OpenPayload{Stake: in.Stake})
	if err != nil {
		return nil, err
	}
	return gameResponse(result), nil
}

// JoinGame stakes the caller as a fader.
func (s *Service) JoinGame(ctx context.Context, in *crapsv1.JoinGameRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "join game request is required")
	}
	cmd, err := gameCommand(in.DeploymentID, in.GameID, game.CommandTypeJoin)
	if err != nil {
		return nil, err
	}
	result, err := s.executeCommand(ctx, cmd, game.JoinPayload{Stake: in.Stake})
	if err != nil {
		return nil, err
	}
	return gameResponse(result), nil
}

// RequestRoll asks the oracle for a roll. Shooter only.
func (s *Service) RequestRoll(ctx context.Context, in *crapsv1.RequestRollRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "request roll request is required")
	}
	return s.rollCommand(ctx, in.DeploymentID, in.GameID, in.Token, game.CommandTypeRequestRoll)
}

// RetryRoll re-issues a roll request the oracle left unanswered.
func (s *Service) RetryRoll(ctx context.Context, in *crapsv1.RetryRollRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "retry roll request is required")
	}
	return s.rollCommand(ctx, in.DeploymentID, in.GameID, in.Token, game.CommandTypeRetryRoll)
}

// ConsumeRandomness delivers attested oracle entropy for the pending roll.
// The attested signer, not the transport caller, is the command actor.
func (s *Service) ConsumeRandomness(ctx context.Context, in *crapsv1.ConsumeRandomnessRequest) (*crapsv1.ConsumeRandomnessResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "consume randomness request is required")
	}
	cmd, err := gameCommand(in.DeploymentID, in.GameID, game.CommandTypeConsumeRandomness)
	if err != nil {
		return nil, err
	}
	if len(s.verifier.Key) == 0 {
		return nil, status.Error(codes.FailedPrecondition, "oracle attestation verifier is not configured")
	}
	identity, err := oracleauth.Verify(in.Attestation, oracleauth.Delivery{
		DeploymentID: cmd.DeploymentID,
		GameID:       cmd.GameID,
		Token:        in.Token,
		Entropy:      in.Entropy,
	}, s.verifier)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	cmd.ActorID = identity.Signer

	result, err := s.executeCommand(ctx, cmd, game.ConsumeRandomnessPayload{
		Token:   in.Token,
		Entropy: in.Entropy,
		Program: identity.Program,
	})
	if err != nil {
		return nil, err
	}
	resolved, ok, err := eventPayload[game.RollResolvedPayload](result.Decision.Events, game.EventTypeRollResolved)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "read roll: %v", err)
	}
	resp := &crapsv1.ConsumeRandomnessResponse{Game: gameToProto(result.Game, result.Deployment.Config.TaxBps)}
	if ok {
		resp.Roll = rollToProto(resolved)
	}
	return resp, nil
}

// CancelGame cancels a game before the first roll. Shooter only.
func (s *Service) CancelGame(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "cancel game request is required")
	}
	return s.plainGameCommand(ctx, in, game.CommandTypeCancel)
}

// ForfeitGame settles a game against a shooter who let the roll window elapse.
func (s *Service) ForfeitGame(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "forfeit game request is required")
	}
	return s.plainGameCommand(ctx, in, game.CommandTypeForfeit)
}

// ClaimPayout pays the caller's settled entitlement out of escrow.
func (s *Service) ClaimPayout(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.ClaimResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "claim payout request is required")
	}
	return s.claim(ctx, in, false)
}

// WithdrawCanceled refunds the caller's stake from a canceled game.
func (s *Service) WithdrawCanceled(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.ClaimResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "withdraw canceled request is required")
	}
	return s.claim(ctx, in, true)
}

// CloseGame sweeps escrow residue to the treasury and retires the game.
func (s *Service) CloseGame(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.CloseGameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "close game request is required")
	}
	cmd, err := gameCommand(in.DeploymentID, in.GameID, game.CommandTypeClose)
	if err != nil {
		return nil, err
	}
	result, err := s.executeCommand(ctx, cmd, nil)
	if err != nil {
		return nil, err
	}
	closed, _, err := eventPayload[game.ClosedPayload](result.Decision.Events, game.EventTypeClosed)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "read close: %v", err)
	}
	return &crapsv1.CloseGameResponse{Residual: closed.Residual, Treasury: closed.Treasury}, nil
}

func (s *Service) rollCommand(ctx context.Context, deploymentID, gameID, token string, cmdType command.Type) (*crapsv1.GameResponse, error) {
	cmd, err := gameCommand(deploymentID, gameID, cmdType)
	if err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		token, err = s.rollTokens()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "generate roll token: %v", err)
		}
	}
	result, err := s.executeCommand(ctx, cmd, game.RollTokenPayload{Token: token})
	if err != nil {
		return nil, err
	}
	return gameResponse(result), nil
}

func (s *Service) plainGameCommand(ctx context.Context, in *crapsv1.GameRequest, cmdType command.Type) (*crapsv1.GameResponse, error) {
	cmd, err := gameCommand(in.DeploymentID, in.GameID, cmdType)
	if err != nil {
		return nil, err
	}
	result, err := s.executeCommand(ctx, cmd, nil)
	if err != nil {
		return nil, err
	}
	return gameResponse(result), nil
}

func (s *Service) claim(ctx context.Context, in *crapsv1.GameRequest, refund bool) (*crapsv1.ClaimResponse, error) {
	cmd, err := gameCommand(in.DeploymentID, in.GameID, game.CommandTypeClaim)
	if err != nil {
		return nil, err
	}
	result, err := s.executeCommand(ctx, cmd, game.ClaimPayload{Refund: refund})
	if err != nil {
		return nil, err
	}
	claimed, _, err := eventPayload[game.PayoutClaimedPayload](result.Decision.Events, game.EventTypePayoutClaimed)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "read claim: %v", err)
	}
	return &crapsv1.ClaimResponse{
		Game:   gameToProto(result.Game, result.Deployment.Config.TaxBps),
		Amount: claimed.Amount,
	}, nil
}

func gameCommand(deploymentID, gameID string, cmdType command.Type) (command.Command, error) {
	deploymentID, err := requireID(deploymentID, "deployment id")
	if err != nil {
		return command.Command{}, err
	}
	gameID, err = requireID(gameID, "game id")
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{DeploymentID: deploymentID, GameID: gameID, Type: cmdType}, nil
}

func gameResponse(result engine.Result) *crapsv1.GameResponse {
	return &crapsv1.GameResponse{Game: gameToProto(result.Game, result.Deployment.Config.TaxBps)}
}
