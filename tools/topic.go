package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/c360/dxdmcp/dxd"
)

// TopicByIDTool exposes topic lookup by publication and topic ID
type TopicByIDTool struct {
	service *dxd.Service
}

// NewTopicByIDTool creates the get_topic_content_by_id tool
func NewTopicByIDTool(service *dxd.Service) *TopicByIDTool {
	return &TopicByIDTool{service: service}
}

// Definition returns the tool schema
func (t *TopicByIDTool) Definition() mcp.Tool {
	return mcp.NewTool("get_topic_content_by_id",
		mcp.WithDescription("Get the content for a specific topic given its publication ID and topic ID"),
		mcp.WithNumber("publicationId",
			mcp.Required(),
			mcp.Description("The publication ID"),
		),
		mcp.WithNumber("topicId",
			mcp.Required(),
			mcp.Description("The topic ID"),
		),
	)
}

// Handle executes the lookup
func (t *TopicByIDTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	publicationID, err := req.RequireInt("publicationId")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	topicID, err := req.RequireInt("topicId")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	return mcp.NewToolResultText(t.service.GetTopicContentByID(ctx, publicationID, topicID)), nil
}

// TopicByURLTool exposes topic lookup by publication ID and topic URL
type TopicByURLTool struct {
	service *dxd.Service
}

// NewTopicByURLTool creates the get_topic_content_by_url tool
func NewTopicByURLTool(service *dxd.Service) *TopicByURLTool {
	return &TopicByURLTool{service: service}
}

// Definition returns the tool schema
func (t *TopicByURLTool) Definition() mcp.Tool {
	return mcp.NewTool("get_topic_content_by_url",
		mcp.WithDescription("Get the content for a specific topic given its publication ID and URL"),
		mcp.WithNumber("publicationId",
			mcp.Required(),
			mcp.Description("The publication ID"),
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The topic URL"),
		),
	)
}

// Handle executes the lookup
func (t *TopicByURLTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	publicationID, err := req.RequireInt("publicationId")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultText(dxd.ErrorString(err.Error())), nil
	}
	return mcp.NewToolResultText(t.service.GetTopicContentByURL(ctx, publicationID, url)), nil
}
