package mcpServer

import (
	"context"

	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Version = "1.0.0"

// Server exposes the agent tools to other agents over the Model Context Protocol.
type Server struct {
	registry *tools.Registry
	server   *mcp.Server
	logger   *logger_i.Logger
}

func New(registry *tools.Registry) *Server {
	s := &Server{
		registry: registry,
		server:   mcp.NewServer(&mcp.Implementation{Name: "sdk-assistant", Version: Version}, nil),
		logger:   logger_i.NewLogger("MCP Server"),
	}
	s.registerTools()
	return s
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Serving tools over stdio", "tools", len(s.registry.Tools()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over transport, used by tests.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}
