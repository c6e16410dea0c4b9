// Package server wires the MCP server and the optional diagnostics
// HTTP server. No business logic lives here, only composition.
package server

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/c360/dxdmcp/dxd"
	"github.com/c360/dxdmcp/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with the five documentation tools
// registered against the given service.
func New(svc *dxd.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"dxdmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	tocTool := tools.NewTocTool(svc)
	s.AddTool(tocTool.Definition(), tocTool.Handle)

	topicByIDTool := tools.NewTopicByIDTool(svc)
	s.AddTool(topicByIDTool.Definition(), topicByIDTool.Handle)

	topicByURLTool := tools.NewTopicByURLTool(svc)
	s.AddTool(topicByURLTool.Definition(), topicByURLTool.Handle)

	searchTool := tools.NewSearchTool(svc)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	recommendTool := tools.NewRecommendTool(svc)
	s.AddTool(recommendTool.Definition(), recommendTool.Handle)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the context
// is cancelled. All logging must go to stderr; stdout carries the
// protocol stream.
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
}

const serverInstructions = `This server exposes SDL Tridion Docs Dynamic Experience Delivery content.

Use get_toc to list a publication's table of contents, get_topic_content_by_id
or get_topic_content_by_url to fetch topic content, search_topics for full-text
search across English page content, and get_recommendations for topics related
to a given topic key.

Tool results are JSON strings. An empty object or empty list means the content
does not exist; a result of the form "Error: [...]" means the request could not
be served.`
