package dxd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/dxdmcp/errors"
	"github.com/c360/dxdmcp/graphql"
	"github.com/c360/dxdmcp/metric"
)

// SentinelRequestFailed is the fixed string returned for any failure
// raised after a query has been issued: transport, protocol, decode or
// serialization. It is part of the caller contract and must not change.
const SentinelRequestFailed = "Error: [Request failed]"

// ErrorString formats the pre-flight error shape, the only other error
// string an operation may return.
func ErrorString(message string) string {
	return "Error: [" + message + "]"
}

// Service is the operation dispatcher. Each method binds arguments to a
// template, executes it once, projects the typed result, and always
// returns a string. No state survives between calls, so a single
// Service instance is safe for any number of concurrent callers.
type Service struct {
	executor  graphql.Executor
	projector *Projector
	logger    *slog.Logger
	metrics   *metric.Metrics
}

// NewService creates the operation service. metrics may be nil when no
// diagnostics endpoint is configured.
func NewService(executor graphql.Executor, logger *slog.Logger, metrics *metric.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		executor:  executor,
		projector: NewProjector(),
		logger:    logger,
		metrics:   metrics,
	}
}

// GetToc returns the table of contents for a publication as a JSON
// object, "{}" when the publication has no TOC.
func (s *Service) GetToc(ctx context.Context, publicationID int) string {
	start := time.Now()
	op := TocTemplate.Name

	if publicationID <= 0 {
		return s.preflight(op, start, "publicationId must be a positive integer")
	}

	toc, err := fetchAs[Toc](s, ctx, TocTemplate, map[string]any{
		"publicationId": publicationID,
	})
	if err != nil {
		return s.failed(op, start, err, "publication_id", publicationID)
	}

	out, err := s.projector.Toc(toc)
	if err != nil {
		return s.degraded(op, start, err, emptyObject, "publication_id", publicationID)
	}

	if toc == nil {
		s.logger.Info("no toc found", "operation", op, "publication_id", publicationID)
		return s.finish(op, metric.OutcomeAbsent, start, out)
	}

	s.logger.Info("toc fetched",
		"operation", op,
		"publication_id", publicationID,
		"entries", len(toc.Entries))
	return s.finish(op, metric.OutcomeSuccess, start, out)
}

// GetTopicContentByID returns the full topic content for a publication
// and topic ID as a JSON object, "{}" when no such topic exists.
func (s *Service) GetTopicContentByID(ctx context.Context, publicationID, topicID int) string {
	start := time.Now()
	op := TopicByIDTemplate.Name

	if publicationID <= 0 {
		return s.preflight(op, start, "publicationId must be a positive integer")
	}
	if topicID <= 0 {
		return s.preflight(op, start, "topicId must be a positive integer")
	}

	return s.topicResult(ctx, op, start, TopicByIDTemplate, map[string]any{
		"publicationId": publicationID,
		"topicId":       topicID,
	}, "publication_id", publicationID, "topic_id", topicID)
}

// GetTopicContentByURL returns the full topic content for a publication
// and topic URL as a JSON object, "{}" when no such topic exists.
func (s *Service) GetTopicContentByURL(ctx context.Context, publicationID int, url string) string {
	start := time.Now()
	op := TopicByURLTemplate.Name

	if publicationID <= 0 {
		return s.preflight(op, start, "publicationId must be a positive integer")
	}
	if strings.TrimSpace(url) == "" {
		return s.preflight(op, start, "url must be a non-empty string")
	}

	return s.topicResult(ctx, op, start, TopicByURLTemplate, map[string]any{
		"publicationId": publicationID,
		"url":           url,
	}, "publication_id", publicationID, "url", url)
}

// topicResult is the shared fetch-project path for both topic lookups.
// Identical resolved data produces identical output regardless of which
// lookup variant was used.
func (s *Service) topicResult(
	ctx context.Context,
	op string,
	start time.Time,
	tmpl Template,
	vars map[string]any,
	logArgs ...any,
) string {
	topic, err := fetchAs[Topic](s, ctx, tmpl, vars)
	if err != nil {
		return s.failed(op, start, err, logArgs...)
	}

	out, err := s.projector.Topic(topic)
	if err != nil {
		return s.degraded(op, start, err, emptyObject, logArgs...)
	}

	if topic == nil {
		s.logger.Info("no topic content found", append([]any{"operation", op}, logArgs...)...)
		return s.finish(op, metric.OutcomeAbsent, start, out)
	}

	s.logger.Info("topic content fetched",
		append([]any{"operation", op, "item_id", topic.ItemID}, logArgs...)...)
	return s.finish(op, metric.OutcomeSuccess, start, out)
}

// SearchTopics searches all topics for a term and returns the ranked
// matches as a JSON array, "[]" when nothing matches.
func (s *Service) SearchTopics(ctx context.Context, term string) string {
	start := time.Now()
	op := SearchTemplate.Name

	if strings.TrimSpace(term) == "" {
		return s.preflight(op, start, "term must be a non-empty string")
	}

	conn, err := fetchAs[SearchResultsConnection](s, ctx, SearchTemplate, map[string]any{
		"term": term,
	})
	if err != nil {
		return s.failed(op, start, err, "term", term)
	}

	out, err := s.projector.Search(conn)
	if err != nil {
		return s.degraded(op, start, err, emptyList, "term", term)
	}

	if conn == nil || conn.Edges == nil {
		s.logger.Info("no search results found", "operation", op, "term", term)
		return s.finish(op, metric.OutcomeAbsent, start, out)
	}

	s.logger.Info("search complete",
		"operation", op,
		"term", term,
		"hits", conn.Hits,
		"edges", len(conn.Edges))
	return s.finish(op, metric.OutcomeSuccess, start, out)
}

// GetRecommendations returns recommended topics for a composite topic
// key ("ish_<publicationId>-<topicId>-16") as a JSON array, "[]" when
// there are none. The source topic is never part of the result.
func (s *Service) GetRecommendations(ctx context.Context, topic string) string {
	start := time.Now()
	op := RecommendTemplate.Name

	if strings.TrimSpace(topic) == "" {
		return s.preflight(op, start, "topic must be a non-empty string")
	}

	rec, err := fetchAs[RecommendResult](s, ctx, RecommendTemplate, map[string]any{
		"topic": topic,
	})
	if err != nil {
		return s.failed(op, start, err, "topic", topic)
	}

	out, err := s.projector.Recommendations(rec)
	if err != nil {
		return s.degraded(op, start, err, emptyList, "topic", topic)
	}

	if rec == nil || rec.Results == nil {
		s.logger.Info("no recommendations found", "operation", op, "topic", topic)
		return s.finish(op, metric.OutcomeAbsent, start, out)
	}

	s.logger.Info("recommendations fetched",
		"operation", op,
		"topic", topic,
		"results", len(rec.Results))
	return s.finish(op, metric.OutcomeSuccess, start, out)
}

// fetchAs executes a template and decodes the result subtree into T.
// A JSON null subtree decodes to a nil pointer, which the projector
// maps to the operation's empty payload.
func fetchAs[T any](s *Service, ctx context.Context, tmpl Template, vars map[string]any) (*T, error) {
	raw, err := s.executor.Execute(ctx, tmpl.Document, vars, tmpl.ResultPath)
	if err != nil {
		return nil, err
	}

	var result *T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.WrapTransient(
			fmt.Errorf("%w: %v", errors.ErrRequestFailed, err),
			"Service", tmpl.Name, "decode result")
	}
	return result, nil
}

// preflight handles argument validation failures: the query is never
// issued and the error string carries the cause message.
func (s *Service) preflight(op string, start time.Time, message string) string {
	s.logger.Error("argument validation failed", "operation", op, "reason", message)
	s.observe(op, metric.OutcomeInvalid, start)
	return ErrorString(message)
}

// failed handles execute-phase failures: exactly one error event is
// logged and the fixed sentinel is returned.
func (s *Service) failed(op string, start time.Time, err error, logArgs ...any) string {
	s.logger.Error("request failed", append([]any{"operation", op, "error", err}, logArgs...)...)
	s.observe(op, metric.OutcomeFailed, start)
	return SentinelRequestFailed
}

// degraded handles a serialization failure after a successful fetch:
// the result degrades to the operation's empty payload rather than the
// sentinel, since the remote call itself succeeded.
func (s *Service) degraded(op string, start time.Time, err error, empty string, logArgs ...any) string {
	s.logger.Error("result serialization failed", append([]any{"operation", op, "error", err}, logArgs...)...)
	s.observe(op, metric.OutcomeFailed, start)
	return empty
}

func (s *Service) finish(op, outcome string, start time.Time, payload string) string {
	s.observe(op, outcome, start)
	return payload
}

func (s *Service) observe(op, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveTool(op, outcome, time.Since(start))
	}
}
