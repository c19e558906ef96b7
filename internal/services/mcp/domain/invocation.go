package domain

import (
	"context"
	"time"

	"github.com/louisbranch/crapshoot/internal/platform/id"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
)

// grpcCallTimeout caps the time for a single gRPC call from an MCP tool handler.
const grpcCallTimeout = 5 * time.Second

// AgentActorID identifies MCP reads in the craps audit log.
const AgentActorID = "mcp-agent"

// toolInvocationContext carries the bounded context and correlation id for one
// tool call.
type toolInvocationContext struct {
	RunCtx       context.Context
	Cancel       context.CancelFunc
	InvocationID string
}

func newToolInvocationContext(ctx context.Context) (toolInvocationContext, error) {
	invocationID, err := id.NewID()
	if err != nil {
		return toolInvocationContext{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
	runCtx = grpcmeta.OutgoingContext(runCtx, AgentActorID, invocationID)
	return toolInvocationContext{RunCtx: runCtx, Cancel: cancel, InvocationID: invocationID}, nil
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
