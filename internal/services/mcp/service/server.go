package service

import (
	"fmt"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "crapshoot MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// crapsReader is the read surface of the craps API exposed as tools.
type crapsReader interface {
	domain.GameClient
	domain.DeploymentClient
}

// Config configures the MCP server.
type Config struct {
	GRPCAddr string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer binds the read-only craps tools to a fresh MCP server. conn may be
// nil when the caller owns the client's transport.
func newServer(client crapsReader, conn *grpc.ClientConn) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("craps client is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, client)
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

func newServerForConn(conn *grpc.ClientConn) (*Server, error) {
	return newServer(crapsv1.NewCrapsServiceClient(conn), conn)
}

func registerTools(server *mcp.Server, client crapsReader) {
	mcp.AddTool(server, domain.DeploymentGetTool(), domain.DeploymentGetHandler(client))
	mcp.AddTool(server, domain.GameGetTool(), domain.GameGetHandler(client))
	mcp.AddTool(server, domain.GameListTool(), domain.GameListHandler(client))
	mcp.AddTool(server, domain.GameEventsTool(), domain.GameEventsHandler(client))
}
