// Package metadata defines the request headers that carry caller identity and
// correlation ids across gRPC boundaries.
package metadata

import (
	"context"
	"strings"

	"github.com/louisbranch/crapshoot/internal/platform/id"
	"github.com/louisbranch/crapshoot/internal/platform/requestctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// ActorIDHeader carries the caller identity used for authorization.
	ActorIDHeader = "x-crapshoot-actor-id"
	// RequestIDHeader carries the request correlation id.
	RequestIDHeader = "x-crapshoot-request-id"
	// InvocationIDHeader carries the agent tool invocation id.
	InvocationIDHeader = "x-crapshoot-invocation-id"
	// LocaleHeader carries the caller's preferred message locale.
	LocaleHeader = "x-crapshoot-locale"
)

type contextKey string

const (
	requestIDContextKey    contextKey = "crapshoot-request-id"
	invocationIDContextKey contextKey = "crapshoot-invocation-id"
)

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// InvocationIDFromContext returns the invocation ID stored in context.
func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(invocationIDContextKey).(string)
	return value
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// WithInvocationID stores the invocation ID in context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDContextKey, invocationID)
}

// OutgoingContext attaches the caller identity and optional invocation id to
// an outbound call.
func OutgoingContext(ctx context.Context, actorID, invocationID string) context.Context {
	pairs := []string{ActorIDHeader, actorID}
	if invocationID = strings.TrimSpace(invocationID); invocationID != "" {
		pairs = append(pairs, InvocationIDHeader, invocationID)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// UnaryServerInterceptor guarantees every inbound call carries a request id,
// echoes correlation ids as response headers, and moves the caller identity
// and locale into the request context.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		requestID := FirstMetadataValue(md, RequestIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
			}
			requestID = generated
		}
		invocationID := FirstMetadataValue(md, InvocationIDHeader)

		ctx = WithRequestID(ctx, requestID)
		headers := metadata.Pairs(RequestIDHeader, requestID)
		if invocationID != "" {
			ctx = WithInvocationID(ctx, invocationID)
			headers.Append(InvocationIDHeader, invocationID)
		}
		if actorID := FirstMetadataValue(md, ActorIDHeader); actorID != "" {
			ctx = requestctx.WithActorID(ctx, actorID)
		}
		if locale := FirstMetadataValue(md, LocaleHeader); locale != "" {
			ctx = requestctx.WithLocale(ctx, locale)
		}
		if err := grpc.SetHeader(ctx, headers); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}

		span := trace.SpanFromContext(ctx)
		span.SetAttributes(attribute.String("crapshoot.request_id", requestID))
		if invocationID != "" {
			span.SetAttributes(attribute.String("crapshoot.invocation_id", invocationID))
		}
		return handler(ctx, req)
	}
}
