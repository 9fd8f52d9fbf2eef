package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/rs/zerolog"
)

// Version is the Notion API version this service speaks.
const Version = "2022-06-28"

// HTTPDoer is the subset of *http.Client the client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues database queries against the Notion API
type Client struct {
	logger     zerolog.Logger
	baseURL    string
	secret     string
	httpClient HTTPDoer
}

// NewClient creates a Notion client from configuration. The default
// http.Client has no timeout; the platform deadline arrives through ctx.
func NewClient(logger zerolog.Logger, cfg config.NotionConfig) *Client {
	return NewClientWithHTTPClient(logger, cfg, http.DefaultClient)
}

// NewClientWithHTTPClient creates a Notion client with a custom HTTP client
func NewClientWithHTTPClient(logger zerolog.Logger, cfg config.NotionConfig, httpClient HTTPDoer) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultNotionBaseURL
	}
	return &Client{
		logger:     logger.With().Str("component", "notion_client").Logger(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		secret:     cfg.Secret,
		httpClient: httpClient,
	}
}

// Query POSTs body as JSON to path and returns the raw response body.
// Any non-2xx status is logged with the upstream response text and
// reported as an upstream error without that text.
func (c *Client) Query(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	logger := c.logger.With().Str("path", path).Logger()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to marshal query body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to build Notion request").
			WithContext("path", path)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Notion-Version", Version)
	req.Header.Set("Content-Type", "application/json")

	logger.Debug().RawJSON("body", payload).Msg("querying Notion")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("Notion request failed")
		return nil, errors.Wrap(err, errors.ErrorTypeNetwork, "Notion request failed").
			WithContext("path", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read Notion response")
		return nil, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read Notion response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Dur("duration", duration).
			Msg("Notion error")
		return nil, errors.New(errors.ErrorTypeUpstream, "failed to call Notion API").
			WithContext("status", resp.StatusCode)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("Notion request completed")

	return respBody, nil
}

// QueryDatabase runs req against the database and decodes the result.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	path := "/databases/" + url.PathEscape(databaseID) + "/query"

	raw, err := c.Query(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var out QueryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to decode Notion response")
		return nil, errors.Wrap(err, errors.ErrorTypeUpstream, "failed to decode Notion response")
	}

	return &out, nil
}
