// Package graphql implements the outbound transport for the adapter: it
// sends a (document, variables, result path) triple to the DXD content
// service and hands back the raw JSON subtree named by the result path.
//
// Failure containment is the package's contract: network errors, non-2xx
// responses, GraphQL errors and malformed bodies are all collapsed into a
// single error wrapping errors.ErrRequestFailed. Callers never distinguish
// a timeout from a bad payload — both are "request failed".
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gql "github.com/hasura/go-graphql-client"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/c360/dxdmcp/config"
	"github.com/c360/dxdmcp/errors"
)

// Executor is the transport boundary consumed by the operation service.
// Execute runs the document once against the remote service and returns
// the JSON subtree at resultPath ("null" when the subtree is absent).
type Executor interface {
	Execute(ctx context.Context, document string, variables map[string]any, resultPath string) (json.RawMessage, error)
}

// Doer abstracts the HTTP client so tests can substitute transports
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client executes GraphQL documents over HTTP with bearer authentication
type Client struct {
	gql     *gql.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a transport client authenticated via the OAuth2
// client-credentials flow. Token acquisition and refresh happen inside
// the HTTP client; ctx bounds the lifetime of the token source.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		TokenURL:     cfg.Auth.TokenURL,
		Scopes:       cfg.Auth.Scopes,
	}
	return NewClientWithHTTP(cfg.Endpoint, cc.Client(ctx), cfg.RequestTimeout(), logger)
}

// NewClientWithHTTP creates a transport client over a caller-supplied HTTP
// client. Used by tests and by deployments with pre-authenticated clients.
func NewClientWithHTTP(endpoint string, httpClient Doer, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		gql:     gql.NewClient(endpoint, httpClient),
		timeout: timeout,
		logger:  logger,
	}
}

// Execute runs one query. The call is one-shot: no retry, no queueing.
func (c *Client) Execute(ctx context.Context, document string, variables map[string]any, resultPath string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	data, err := c.gql.ExecRaw(ctx, document, variables)
	if err != nil {
		c.logger.Debug("graphql request failed",
			"result_path", resultPath,
			"elapsed", time.Since(start),
			"error", err)
		return nil, errors.WrapTransient(
			fmt.Errorf("%w: %v", errors.ErrRequestFailed, err),
			"Client", "Execute", "execute query")
	}

	result, err := resolvePath(data, resultPath)
	if err != nil {
		c.logger.Debug("graphql response malformed",
			"result_path", resultPath,
			"error", err)
		return nil, errors.WrapTransient(
			fmt.Errorf("%w: %v", errors.ErrRequestFailed, err),
			"Client", "Execute", "resolve result path")
	}

	c.logger.Debug("graphql request complete",
		"result_path", resultPath,
		"elapsed", time.Since(start))
	return result, nil
}

// resolvePath descends the response data by dot-separated object keys.
// A missing key or JSON null anywhere on the path yields "null" — that is
// absence, which the projector turns into an empty payload, not an error.
func resolvePath(data []byte, path string) (json.RawMessage, error) {
	node := json.RawMessage(data)
	if path == "" {
		return node, nil
	}

	for _, segment := range strings.Split(path, ".") {
		if isNull(node) {
			return json.RawMessage("null"), nil
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(node, &obj); err != nil {
			return nil, fmt.Errorf("result path %q: segment %q is not an object: %w", path, segment, err)
		}
		child, ok := obj[segment]
		if !ok {
			return json.RawMessage("null"), nil
		}
		node = child
	}

	if isNull(node) {
		return json.RawMessage("null"), nil
	}
	return node, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
