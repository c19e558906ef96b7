// Package interceptors holds the unary interceptors of the craps gRPC server.
package interceptors

import (
	"context"
	"log"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/requestctx"
	grpcmeta "github.com/louisbranch/crapshoot/internal/services/craps/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logger is the sink for audit lines.
type Logger interface {
	Printf(format string, v ...any)
}

// AuditInterceptor writes one line per write call and per failed call. Reads
// that succeed are not logged.
func AuditInterceptor(logger Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = log.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)

		kind := classifyMethodKind(info.FullMethod)
		code := status.Code(err)
		if kind == "read" && code == codes.OK {
			return resp, err
		}

		deploymentID, gameID := extractScope(req)
		line := []string{
			"method=" + info.FullMethod,
			"kind=" + kind,
			"code=" + code.String(),
		}
		line = appendField(line, "deployment", deploymentID)
		line = appendField(line, "game", gameID)
		line = appendField(line, "actor", requestctx.ActorIDFromContext(ctx))
		line = appendField(line, "request", grpcmeta.RequestIDFromContext(ctx))
		line = appendField(line, "invocation", grpcmeta.InvocationIDFromContext(ctx))
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			line = appendField(line, "trace", sc.TraceID().String())
		}
		if err != nil {
			line = appendField(line, "error", status.Convert(err).Message())
		}
		logger.Printf("audit %s", strings.Join(line, " "))

		return resp, err
	}
}

type deploymentIDGetter interface {
	GetDeploymentID() string
}

type gameIDGetter interface {
	GetGameID() string
}

func extractScope(req any) (string, string) {
	if req == nil {
		return "", ""
	}
	var deploymentID, gameID string
	if getter, ok := req.(deploymentIDGetter); ok {
		deploymentID = strings.TrimSpace(getter.GetDeploymentID())
	}
	if getter, ok := req.(gameIDGetter); ok {
		gameID = strings.TrimSpace(getter.GetGameID())
	}
	return deploymentID, gameID
}

func appendField(line []string, key, value string) []string {
	if value == "" {
		return line
	}
	return append(line, key+"="+value)
}

func classifyMethodKind(fullMethod string) string {
	switch fullMethod {
	case crapsv1.CrapsService_GetDeployment_FullMethodName,
		crapsv1.CrapsService_GetBalance_FullMethodName,
		crapsv1.CrapsService_GetGame_FullMethodName,
		crapsv1.CrapsService_ListGames_FullMethodName,
		crapsv1.CrapsService_ListGameEvents_FullMethodName:
		return "read"
	default:
		return "write"
	}
}
