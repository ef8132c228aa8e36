// Package mcp exposes the analysis pipeline and pattern library as MCP
// tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/OscarLawrence/UCP/internal/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes text analysis tools.
type Server struct {
	engine *engine.Engine
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the given engine.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{engine: eng}

	s.mcp = server.NewMCPServer(
		"ucp",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeTextTool, s.handleAnalyzeText)
	s.mcp.AddTool(proposeSolutionTool, s.handleProposeSolution)
	s.mcp.AddTool(recordPatternTool, s.handleRecordPattern)
	s.mcp.AddTool(libraryStatusTool, s.handleLibraryStatus)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
