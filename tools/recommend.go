package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/c360/dxdmcp/dxd"
)

// RecommendTool exposes related-topic recommendations
type RecommendTool struct {
	service *dxd.Service
}

// NewRecommendTool creates the get_recommendations tool
func NewRecommendTool(service *dxd.Service) *RecommendTool {
	return &RecommendTool{service: service}
}

// Definition returns the tool schema
func (t *RecommendTool) Definition() mcp.Tool {
	return mcp.NewTool("get_recommendations",
		mcp.WithDescription("Get recommendations for a given topic"),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("The topic to get recommendations for, in the format 'ish_<publicationId>-<topicId>-16'"),
		),
	)
}

// Handle executes the recommendation lookup
func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	return mcp.NewToolResultText(t.service.GetRecommendations(ctx, topic)), nil
}
