package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/c360/dxdmcp/dxd"
)

// SearchTool exposes full-text topic search
type SearchTool struct {
	service *dxd.Service
}

// NewSearchTool creates the search_topics tool
func NewSearchTool(service *dxd.Service) *SearchTool {
	return &SearchTool{service: service}
}

// Definition returns the tool schema
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_topics",
		mcp.WithDescription("Search all topics"),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("The term to search for"),
		),
	)
}

// Handle executes the search
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	return mcp.NewToolResultText(t.service.SearchTopics(ctx, term)), nil
}
