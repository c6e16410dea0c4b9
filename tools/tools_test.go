package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/dxdmcp/dxd"
	errs "github.com/c360/dxdmcp/errors"
)

type stubExecutor struct {
	data json.RawMessage
	err  error
}

func (s *stubExecutor) Execute(_ context.Context, _ string, _ map[string]any, _ string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(exec *stubExecutor) *dxd.Service {
	return dxd.NewService(exec, discardLogger(), nil)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`null`)})

	cases := []struct {
		def      mcp.Tool
		name     string
		required []string
	}{
		{NewTocTool(svc).Definition(), "get_toc", []string{"publicationId"}},
		{NewTopicByIDTool(svc).Definition(), "get_topic_content_by_id", []string{"publicationId", "topicId"}},
		{NewTopicByURLTool(svc).Definition(), "get_topic_content_by_url", []string{"publicationId", "url"}},
		{NewSearchTool(svc).Definition(), "search_topics", []string{"term"}},
		{NewRecommendTool(svc).Definition(), "get_recommendations", []string{"topic"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.def.Name)
			assert.NotEmpty(t, tc.def.Description)
			assert.ElementsMatch(t, tc.required, tc.def.InputSchema.Required)
			for _, arg := range tc.required {
				assert.Contains(t, tc.def.InputSchema.Properties, arg)
			}
		})
	}
}

func TestTocToolHandle(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`{"entries":[]}`)})
	tool := NewTocTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{"publicationId": float64(42)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":[]}`, resultText(t, res))
}

func TestTocToolHandleMissingArgument(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`null`)})
	tool := NewTocTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err, "argument errors surface as tool text, never as protocol errors")

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "Error: ["), "got %q", text)
	assert.True(t, strings.HasSuffix(text, "]"), "got %q", text)
}

func TestTopicByIDToolHandle(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`{"__typename":"IshGenericTopic","title":"Install"}`)})
	tool := NewTopicByIDTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"publicationId": float64(42),
		"topicId":       float64(7),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"Install"`)
}

func TestTopicByURLToolHandle(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`{"__typename":"IshGenericTopic","title":"Install"}`)})
	tool := NewTopicByURLTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"publicationId": float64(42),
		"url":           "/docs/install",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"Install"`)
}

func TestSearchToolHandle(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`{"hits":0,"edges":[]}`)})
	tool := NewSearchTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{"term": "install"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, res))
}

func TestRecommendToolHandle(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`{"results":[]}`)})
	tool := NewRecommendTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{"topic": "ish_42-7-16"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, res))
}

func TestTocToolHandleTransportFailure(t *testing.T) {
	svc := newService(&stubExecutor{err: errs.WrapTransient(errs.ErrRequestFailed, "Client", "Execute", "execute query")})
	tool := NewTocTool(svc)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{"publicationId": float64(42)}))
	require.NoError(t, err)
	assert.Equal(t, dxd.SentinelRequestFailed, resultText(t, res))
}

func TestHandleInvalidArgumentsNeverReturnError(t *testing.T) {
	svc := newService(&stubExecutor{data: json.RawMessage(`null`)})

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"get_toc":                  NewTocTool(svc).Handle,
		"get_topic_content_by_id":  NewTopicByIDTool(svc).Handle,
		"get_topic_content_by_url": NewTopicByURLTool(svc).Handle,
		"search_topics":            NewSearchTool(svc).Handle,
		"get_recommendations":      NewRecommendTool(svc).Handle,
	}

	for name, handle := range handlers {
		t.Run(name, func(t *testing.T) {
			res, err := handle(context.Background(), callRequest(map[string]any{}))
			require.NoError(t, err)
			text := resultText(t, res)
			assert.True(t, strings.HasPrefix(text, "Error: ["), "got %q", text)
		})
	}
}
