// Package handler serves the blog function: it reads the proxy event,
// queries the database and writes the JSON view.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/logger"
	"github.com/brendan.keane/notion-blog/internal/notion"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Query modes
const (
	ModeList   = "list"
	ModeDetail = "detail"
)

// Public error messages
const (
	MsgMissingSlug  = "Missing slug"
	MsgPostNotFound = "Post not found"
	MsgInvalidMode  = "Invalid mode"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Querier runs a database query. *notion.Client satisfies it.
type Querier interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResponse, error)
}

// Handler answers list and detail requests.
type Handler struct {
	logger     zerolog.Logger
	notion     Querier
	databaseID string
}

// New creates a handler bound to the configured database
func New(log zerolog.Logger, cfg *config.Config, q Querier) *Handler {
	return &Handler{
		logger:     logger.ForComponent(log, "handler"),
		notion:     q,
		databaseID: cfg.Notion.DatabaseID,
	}
}

// Handle is the Lambda entrypoint. The returned error is always nil so
// failures reach the caller as a response rather than a platform error.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, _ error) {
	mode := req.QueryStringParameters["mode"]
	if mode == "" {
		mode = ModeList
	}
	log := logger.ForRequest(h.logger, requestID(ctx, req), mode)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("handler panicked")
			resp = errorResponse(errors.Newf(errors.ErrorTypeInternal, "panic: %v", r))
		}
	}()

	var (
		body interface{}
		err  error
	)
	switch mode {
	case ModeList:
		body, err = h.list(ctx, req.QueryStringParameters["category"])
	case ModeDetail:
		body, err = h.detail(ctx, req.QueryStringParameters["slug"])
	default:
		err = errors.New(errors.ErrorTypeValidation, MsgInvalidMode).WithContext("mode", mode)
	}

	if err != nil {
		status := errors.StatusCode(err)
		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.Err(err).Int("status", status).Fields(errors.GetContext(err)).Msg("request failed")
		return errorResponse(err), nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		return errorResponse(errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode response")), nil
	}

	log.Info().Int("status", http.StatusOK).Msg("request served")
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       string(data),
	}, nil
}

func (h *Handler) list(ctx context.Context, category string) ([]post.ListItem, error) {
	filter := notion.PublishedFilter()
	if category != "" {
		filter = notion.And(filter, notion.CategoryFilter(category))
	}

	resp, err := h.notion.QueryDatabase(ctx, h.databaseID, notion.QueryRequest{
		Filter: &filter,
		Sorts:  []notion.Sort{notion.LastEditedDescending()},
	})
	if err != nil {
		return nil, err
	}
	return post.ToListItems(resp.Results), nil
}

func (h *Handler) detail(ctx context.Context, slug string) (*post.Detail, error) {
	if slug == "" {
		return nil, errors.New(errors.ErrorTypeValidation, MsgMissingSlug)
	}

	filter := notion.And(notion.PublishedFilter(), notion.SlugFilter(slug))
	resp, err := h.notion.QueryDatabase(ctx, h.databaseID, notion.QueryRequest{
		Filter:   &filter,
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, errors.New(errors.ErrorTypeNotFound, MsgPostNotFound).WithContext("slug", slug)
	}

	detail := post.ToDetail(resp.Results[0])
	return &detail, nil
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: errors.StatusCode(err),
		Headers:    map[string]string{"Content-Type": contentTypeText},
		Body:       errors.PublicMessage(err),
	}
}

// requestID prefers the Lambda invocation ID, then the gateway's, then a new one.
func requestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	return uuid.NewString()
}
