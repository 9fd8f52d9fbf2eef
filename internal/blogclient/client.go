// Package blogclient calls a deployed blog function, over HTTPS or by
// invoking the Lambda directly, and maps its responses back to typed
// posts and errors.
package blogclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/post"
	bloghttp "github.com/brendan.keane/notion-blog/pkg/http"
	"github.com/rs/zerolog"
)

// Doer executes HTTP requests
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads posts from a deployed function
type Client struct {
	logger   zerolog.Logger
	endpoint *url.URL
	http     Doer
	signer   *Signer
}

// New creates a client from the CLI configuration
func New(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (*Client, error) {
	if err := cfg.ValidateClient(); err != nil {
		return nil, err
	}

	doer, err := bloghttp.NewClient(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create lambda-capable client, falling back to basic client")
		doer = bloghttp.NewClientWithInvoker(http.DefaultClient, nil)
	}

	var signer *Signer
	if cfg.Client.SigV4Enabled && !strings.HasPrefix(cfg.Client.Endpoint, bloghttp.LambdaScheme+"://") {
		if signer, err = NewSigner(ctx, logger, cfg.Client.SigV4Service); err != nil {
			return nil, err
		}
	}

	return NewWithDoer(logger, cfg.Client.Endpoint, doer, signer)
}

// NewWithDoer creates a client around an existing transport. signer may be nil.
func NewWithDoer(logger zerolog.Logger, endpoint string, doer Doer, signer *Signer) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid endpoint").
			WithContext("endpoint", endpoint)
	}

	return &Client{
		logger:   logger.With().Str("component", "blogclient").Logger(),
		endpoint: u,
		http:     doer,
		signer:   signer,
	}, nil
}

// ListPosts fetches published posts, optionally narrowed to category
func (c *Client) ListPosts(ctx context.Context, category string) ([]post.ListItem, error) {
	params := url.Values{"mode": {"list"}}
	if category != "" {
		params.Set("category", category)
	}

	var items []post.ListItem
	if err := c.get(ctx, params, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []post.ListItem{}
	}
	return items, nil
}

// GetPost fetches one post by slug
func (c *Client) GetPost(ctx context.Context, slug string) (*post.Detail, error) {
	if slug == "" {
		return nil, errors.New(errors.ErrorTypeValidation, "slug is required").
			WithContext("suggestion", "pass the post slug as an argument")
	}

	var detail post.Detail
	if err := c.get(ctx, url.Values{"mode": {"detail"}, "slug": {slug}}, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) get(ctx context.Context, params url.Values, v interface{}) error {
	u := *c.endpoint
	query := u.Query()
	for key, values := range params {
		query[key] = values
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	if c.signer != nil {
		if err := c.signer.Sign(ctx, req); err != nil {
			return err
		}
	}

	c.logger.Debug().Str("url", u.String()).Msg("calling blog function")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeNetwork, "failed to call blog function").
			WithContext("endpoint", c.endpoint.String())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read response")
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("request_id", resp.Header.Get(bloghttp.RequestIDHeader)).
		Msg("blog function responded")

	if err := statusError(resp.StatusCode, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeUpstream, "unexpected response from blog function")
	}
	return nil
}

// statusError maps a function response status back to a typed error
func statusError(status int, body []byte) error {
	message := strings.TrimSpace(string(body))

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest:
		return errors.New(errors.ErrorTypeValidation, message).
			WithContext("status", status)
	case status == http.StatusNotFound:
		return errors.New(errors.ErrorTypeNotFound, message).
			WithContext("status", status)
	default:
		if message == "" {
			message = http.StatusText(status)
		}
		return errors.New(errors.ErrorTypeUpstream, message).
			WithContext("status", status)
	}
}
