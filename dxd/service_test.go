package dxd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/dxdmcp/errors"
)

// fakeExecutor records the last request and replays a canned response
type fakeExecutor struct {
	response json.RawMessage
	err      error

	calls        int
	lastDocument string
	lastVars     map[string]any
	lastPath     string
}

func (f *fakeExecutor) Execute(_ context.Context, document string, variables map[string]any, resultPath string) (json.RawMessage, error) {
	f.calls++
	f.lastDocument = document
	f.lastVars = variables
	f.lastPath = resultPath
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// errorCounter counts error-level log records so tests can assert the
// "exactly one logged error event per failure" contract
type errorCounter struct {
	count atomic.Int64
}

func (c *errorCounter) Enabled(context.Context, slog.Level) bool { return true }
func (c *errorCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		c.count.Add(1)
	}
	return nil
}
func (c *errorCounter) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *errorCounter) WithGroup(string) slog.Handler      { return c }

func newTestService(exec *fakeExecutor) (*Service, *errorCounter) {
	counter := &errorCounter{}
	return NewService(exec, slog.New(counter), nil), counter
}

var errShape = regexp.MustCompile(`^Error: \[.*\]$`)

// assertWellFormed checks the universal contract: every result is valid
// JSON or one of the two error string shapes.
func assertWellFormed(t *testing.T, result string) {
	t.Helper()
	if errShape.MatchString(result) {
		return
	}
	assert.True(t, json.Valid([]byte(result)), "result is neither an error string nor JSON: %q", result)
}

func TestGetToc_TwoLevelTree(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{
		"entries": [
			{"id": "a", "tocId": "1", "title": "Install", "hasChildren": true,
			 "entries": [{"id": "a1", "title": "Prerequisites", "hasChildren": false}]},
			{"id": "b", "tocId": "2", "title": "Configure", "hasChildren": true,
			 "entries": [{"id": "b1", "title": "Options", "hasChildren": false}]},
			{"id": "c", "tocId": "3", "title": "Uninstall", "hasChildren": true,
			 "entries": [{"id": "c1", "title": "Cleanup", "hasChildren": false}]}
		]
	}`)}
	svc, counter := newTestService(exec)

	result := svc.GetToc(context.Background(), 42)
	assertWellFormed(t, result)

	var toc Toc
	require.NoError(t, json.Unmarshal([]byte(result), &toc))
	require.Len(t, toc.Entries, 3)
	for _, entry := range toc.Entries {
		assert.NotEmpty(t, entry.Entries, "each root entry carries nested entries")
	}

	assert.Equal(t, map[string]any{"publicationId": 42}, exec.lastVars)
	assert.Equal(t, "ishToc", exec.lastPath)
	assert.Equal(t, TocTemplate.Document, exec.lastDocument)
	assert.Equal(t, int64(0), counter.count.Load())
}

func TestGetToc_Absent(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`null`)}
	svc, counter := newTestService(exec)

	result := svc.GetToc(context.Background(), 42)
	assert.Equal(t, "{}", result)
	assert.Equal(t, int64(0), counter.count.Load(), "absence is not an error")
}

func TestOperations_TransportFailure(t *testing.T) {
	operations := []struct {
		name   string
		invoke func(*Service) string
	}{
		{"get_toc", func(s *Service) string { return s.GetToc(context.Background(), 1) }},
		{"get_topic_content_by_id", func(s *Service) string { return s.GetTopicContentByID(context.Background(), 1, 2) }},
		{"get_topic_content_by_url", func(s *Service) string {
			return s.GetTopicContentByURL(context.Background(), 1, "/install")
		}},
		{"search_topics", func(s *Service) string { return s.SearchTopics(context.Background(), "install") }},
		{"get_recommendations", func(s *Service) string { return s.GetRecommendations(context.Background(), "ish_1-2-16") }},
	}

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			exec := &fakeExecutor{err: fmt.Errorf("dial: %w", errors.ErrRequestFailed)}
			svc, counter := newTestService(exec)

			result := op.invoke(svc)
			assert.Equal(t, SentinelRequestFailed, result)
			assert.Equal(t, int64(1), counter.count.Load(), "exactly one logged error event")
		})
	}
}

func TestOperations_MalformedResult(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{"entries": "not-a-list"}`)}
	svc, counter := newTestService(exec)

	result := svc.GetToc(context.Background(), 42)
	assert.Equal(t, SentinelRequestFailed, result, "decode failure is a request failure")
	assert.Equal(t, int64(1), counter.count.Load())
}

func TestPreflightValidation(t *testing.T) {
	tests := []struct {
		name     string
		invoke   func(*Service) string
		expected string
	}{
		{"toc publication id", func(s *Service) string { return s.GetToc(context.Background(), 0) },
			"Error: [publicationId must be a positive integer]"},
		{"topic id", func(s *Service) string { return s.GetTopicContentByID(context.Background(), 5, -1) },
			"Error: [topicId must be a positive integer]"},
		{"topic url", func(s *Service) string { return s.GetTopicContentByURL(context.Background(), 5, "  ") },
			"Error: [url must be a non-empty string]"},
		{"search term", func(s *Service) string { return s.SearchTopics(context.Background(), "") },
			"Error: [term must be a non-empty string]"},
		{"recommendation topic", func(s *Service) string { return s.GetRecommendations(context.Background(), "") },
			"Error: [topic must be a non-empty string]"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			svc, _ := newTestService(exec)

			result := test.invoke(svc)
			assert.Equal(t, test.expected, result)
			assert.True(t, errShape.MatchString(result))
			assert.Zero(t, exec.calls, "no query may be issued after a pre-flight failure")
		})
	}
}

func TestSearchTopics_NullNodeExcluded(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{
		"hits": 2,
		"edges": [
			{"node": {"search": {"score": 7.2, "id": "top", "locale": "en", "url": "/install", "title": "Install"}}},
			{"node": null}
		]
	}`)}
	svc, _ := newTestService(exec)

	result := svc.SearchTopics(context.Background(), "install")

	var results []SearchResult
	require.NoError(t, json.Unmarshal([]byte(result), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "top", results[0].ID)
	assert.Equal(t, map[string]any{"term": "install"}, exec.lastVars)
	assert.Equal(t, "search.results", exec.lastPath)
}

func TestSearchTopics_NoMatches(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`null`)}
	svc, _ := newTestService(exec)

	assert.Equal(t, "[]", svc.SearchTopics(context.Background(), "zzzz"))
}

func TestGetRecommendations_NoMatches(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{"sourceTopic": {"id": "ish_1-2-16"}}`)}
	svc, _ := newTestService(exec)

	assert.Equal(t, "[]", svc.GetRecommendations(context.Background(), "ish_1-2-16"))
}

func TestGetRecommendations_ExcludesSourceTopic(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{
		"sourceTopic": {"id": "ish_1-2-16", "title": "Source topic"},
		"results": [
			{"id": "ish_1-3-16", "title": "Related", "publicationId": 1, "publicationTitle": "Guide"},
			null
		]
	}`)}
	svc, _ := newTestService(exec)

	result := svc.GetRecommendations(context.Background(), "ish_1-2-16")

	var results []RecommendedTopic
	require.NoError(t, json.Unmarshal([]byte(result), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Related", results[0].Title)
	assert.NotContains(t, result, "Source topic")
}

func TestTopicLookups_IdenticalOutput(t *testing.T) {
	payload := json.RawMessage(`{
		"__typename": "IshTaskTopic",
		"publicationId": 5,
		"itemId": 9,
		"title": "Replace the filter",
		"url": "/maintenance/filter",
		"xhtml": "<section>...</section>",
		"body": {"steps": [{"__typename": "IshTaskStep", "title": "Open the panel", "xhtml": "<p/>"}]}
	}`)

	byID, _ := newTestService(&fakeExecutor{response: payload})
	byURL, _ := newTestService(&fakeExecutor{response: payload})

	idResult := byID.GetTopicContentByID(context.Background(), 5, 9)
	urlResult := byURL.GetTopicContentByURL(context.Background(), 5, "/maintenance/filter")

	assert.Equal(t, idResult, urlResult,
		"identical resolved data must serialize identically for both lookups")
	assert.Contains(t, idResult, `"steps"`)
}

func TestTopicLookup_GenericTopicOmitsSteps(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`{
		"__typename": "IshGenericTopic",
		"publicationId": 5,
		"itemId": 10,
		"title": "Overview",
		"xhtml": "<p>About.</p>"
	}`)}
	svc, _ := newTestService(exec)

	result := svc.GetTopicContentByID(context.Background(), 5, 10)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	_, present := decoded["body"]
	assert.False(t, present)
	_, present = decoded["steps"]
	assert.False(t, present)
}

func TestTopicLookup_Absent(t *testing.T) {
	exec := &fakeExecutor{response: json.RawMessage(`null`)}
	svc, _ := newTestService(exec)

	assert.Equal(t, "{}", svc.GetTopicContentByID(context.Background(), 5, 404))
}
