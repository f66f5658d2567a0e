// Package mcp exposes the recommendation engine and the nutrition datasets
// as MCP tools, over stdio for local agents or as a streamable HTTP handler
// mounted by the REST server.
package mcp

import (
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/engine"
)

// Server wraps the mark3labs MCP server around the engine and catalogs.
type Server struct {
	mcpServer *server.MCPServer
	engine    *engine.Engine
	foods     *catalog.Catalog
	diseases  *catalog.DiseaseTable
	log       *slog.Logger
}

// NewServer creates the MCP server and registers the tools.
func NewServer(eng *engine.Engine, foods *catalog.Catalog, diseases *catalog.DiseaseTable, logger *slog.Logger) *Server {
	mcpServer := server.NewMCPServer(
		"FitPlate Meal Plan Server",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		engine:    eng,
		foods:     foods,
		diseases:  diseases,
		log:       logger,
	}
	s.addTools()
	return s
}

// StreamableHandler returns the stateless streamable HTTP handler for
// mounting at /mcp. Auth is the caller's responsibility.
func (s *Server) StreamableHandler() http.Handler {
	return server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)
}

// ServeStdio serves the MCP server over stdio. No auth for local use.
func (s *Server) ServeStdio() error {
	s.log.Info("Starting MCP server in stdio mode")
	return server.ServeStdio(s.mcpServer)
}
