package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/c360/dxdmcp/dxd"
)

// TocTool exposes the table-of-contents lookup
type TocTool struct {
	service *dxd.Service
}

// NewTocTool creates the get_toc tool
func NewTocTool(service *dxd.Service) *TocTool {
	return &TocTool{service: service}
}

// Definition returns the tool schema
func (t *TocTool) Definition() mcp.Tool {
	return mcp.NewTool("get_toc",
		mcp.WithDescription("Gets the Table of Content for a given publication ID"),
		mcp.WithNumber("publicationId",
			mcp.Required(),
			mcp.Description("The publication ID"),
		),
	)
}

// Handle executes the lookup. Argument extraction failures return the
// pre-flight error shape as text; the operation itself never errors.
func (t *TocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	publicationID, err := req.RequireInt("publicationId")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	return mcp.NewToolResultText(t.service.GetToc(ctx, publicationID)), nil
}
