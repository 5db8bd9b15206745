package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/techtree/internal/dataset"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes tech tree lookup tools.
type Server struct {
	registry *dataset.Registry
	locale   string
	mcp      *server.MCPServer
}

// NewServer creates an MCP server over a dataset registry. locale is used
// when a tool call does not name one.
func NewServer(registry *dataset.Registry, locale string) *Server {
	s := &Server{
		registry: registry,
		locale:   dataset.ResolveLocale(locale, ""),
	}

	s.mcp = server.NewMCPServer(
		"techtree",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCivsTool, s.handleListCivs)
	s.mcp.AddTool(findNodeTool, s.handleFindNode)
	s.mcp.AddTool(getHelpTextTool, s.handleGetHelpText)
	s.mcp.AddTool(civAvailabilityTool, s.handleCivAvailability)
	s.mcp.AddTool(ancestorPathTool, s.handleAncestorPath)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
