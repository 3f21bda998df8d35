// ABOUTME: MCP server setup for the habit store.
// ABOUTME: Wraps the MCP server around a habits.Store.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/habits"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
var Version = "1.0.0"

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	store     *habits.Store
	logger    *log.Logger
}

// NewServer creates a new MCP server for the given store.
func NewServer(store *habits.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "habits",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
