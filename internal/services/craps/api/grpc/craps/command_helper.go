package craps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/platform/requestctx"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// executeCommand stamps cmd with the caller identity and correlation ids from
// ctx, runs it, and converts errors and rejections to gRPC statuses. A
// non-empty cmd.ActorID is kept as is.
func (s *Service) executeCommand(ctx context.Context, cmd command.Command, payload any) (engine.Result, error) {
	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return engine.Result{}, status.Errorf(codes.Internal, "encode payload: %v", err)
		}
		cmd.PayloadJSON = payloadJSON
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		cmd.ActorID = requestctx.ActorIDFromContext(ctx)
	}
	cmd.RequestID = grpcmeta.RequestIDFromContext(ctx)
	cmd.InvocationID = grpcmeta.InvocationIDFromContext(ctx)

	result, err := s.domain.Execute(ctx, cmd)
	if err != nil {
		if engine.IsNonRetryable(err) {
			log.Printf("craps: %s on %s/%s failed after commit attempt: %v", cmd.Type, cmd.DeploymentID, cmd.GameID, err)
		}
		return engine.Result{}, handleDomainError(ctx, err)
	}
	if result.Decision.Rejected() {
		return engine.Result{}, handleDomainError(ctx, result.Decision.Err())
	}
	return result, nil
}

// handleDomainError converts domain errors to a gRPC status localized for the
// caller. Storage misses map to NotFound.
func handleDomainError(ctx context.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		err = apperrors.Wrap(apperrors.CodeNotFound, "record not found", err)
	}
	return apperrors.HandleError(err, requestctx.LocaleFromContext(ctx))
}

// eventPayload decodes the payload of the first event of type eventType.
func eventPayload[T any](events []event.Event, eventType event.Type) (T, bool, error) {
	var payload T
	for _, evt := range events {
		if evt.Type != eventType {
			continue
		}
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return payload, false, fmt.Errorf("decode %s payload: %w", eventType, err)
		}
		return payload, true, nil
	}
	return payload, false, nil
}

func requireID(value, name string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return value, nil
}
