package craps

import (
	"context"
	"strconv"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/grpc/pagination"
	"github.com/louisbranch/crapshoot/internal/services/craps/core/filter"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultListGamesPageSize  = 10
	maxListGamesPageSize      = 50
	defaultListEventsPageSize = 50
	maxListEventsPageSize     = 200
)

// GetGame returns one open game with its payout preview.
func (s *Service) GetGame(ctx context.Context, in *crapsv1.GameRequest) (*crapsv1.GameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get game request is required")
	}
	cmd, err := gameCommand(in.DeploymentID, in.GameID, "")
	if err != nil {
		return nil, err
	}
	state, err := s.stores.Game.GetGame(ctx, cmd.DeploymentID, cmd.GameID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	taxBps, err := s.taxBps(ctx, cmd.DeploymentID)
	if err != nil {
		return nil, err
	}
	return &crapsv1.GameResponse{Game: gameToProto(state, taxBps)}, nil
}

// ListGames returns a page of open games, optionally filtered.
func (s *Service) ListGames(ctx context.Context, in *crapsv1.ListGamesRequest) (*crapsv1.ListGamesResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list games request is required")
	}
	deploymentID, err := requireID(in.DeploymentID, "deployment id")
	if err != nil {
		return nil, err
	}
	condition, err := filter.ParseGameFilter(in.Filter)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid filter: %v", err)
	}
	pageSize := pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
		Default: defaultListGamesPageSize,
		Max:     maxListGamesPageSize,
	})

	page, err := s.stores.Game.ListGames(ctx, storage.ListGamesQuery{
		DeploymentID: deploymentID,
		PageSize:     pageSize,
		PageToken:    strings.TrimSpace(in.PageToken),
		Where:        condition.Clause,
		Args:         condition.Params,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list games: %v", err)
	}

	response := &crapsv1.ListGamesResponse{NextPageToken: page.NextPageToken}
	if len(page.Games) == 0 {
		return response, nil
	}
	taxBps, err := s.taxBps(ctx, deploymentID)
	if err != nil {
		return nil, err
	}
	response.Games = make([]*crapsv1.Game, 0, len(page.Games))
	for _, state := range page.Games {
		response.Games = append(response.Games, gameToProto(state, taxBps))
	}
	return response, nil
}

// ListGameEvents pages through the journal of one game, or of the whole
// deployment when no game id is given.
func (s *Service) ListGameEvents(ctx context.Context, in *crapsv1.ListGameEventsRequest) (*crapsv1.ListGameEventsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list game events request is required")
	}
	deploymentID, err := requireID(in.DeploymentID, "deployment id")
	if err != nil {
		return nil, err
	}
	var afterSeq uint64
	if token := strings.TrimSpace(in.PageToken); token != "" {
		afterSeq, err = strconv.ParseUint(token, 10, 64)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "invalid page token")
		}
	}
	pageSize := pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
		Default: defaultListEventsPageSize,
		Max:     maxListEventsPageSize,
	})

	page, err := s.stores.Event.ListEvents(ctx, storage.ListEventsQuery{
		DeploymentID: deploymentID,
		GameID:       strings.TrimSpace(in.GameID),
		AfterSeq:     afterSeq,
		PageSize:     pageSize,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list events: %v", err)
	}

	response := &crapsv1.ListGameEventsResponse{
		Events:        make([]*crapsv1.Event, 0, len(page.Events)),
		NextPageToken: page.NextPageToken,
	}
	for _, evt := range page.Events {
		response.Events = append(response.Events, eventToProto(evt))
	}
	return response, nil
}

func (s *Service) taxBps(ctx context.Context, deploymentID string) (uint32, error) {
	state, err := s.stores.Deployment.GetDeployment(ctx, deploymentID)
	if err != nil {
		return 0, handleDomainError(ctx, err)
	}
	return state.Config.TaxBps, nil
}
