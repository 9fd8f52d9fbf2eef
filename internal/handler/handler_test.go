package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/notion"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/brendan.keane/notion-blog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(params map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/.netlify/functions/notion-blog",
		QueryStringParameters: params,
	}
}

func newHandler(q Querier) *Handler {
	logger, _ := testutil.CaptureLogger()
	return New(logger, testutil.NewConfigBuilder().Build(), q)
}

func TestHandle_List(t *testing.T) {
	q := testutil.NewMockQuerier(
		testutil.PublishedPost("1", "newer", "Newer"),
		testutil.PublishedPost("2", "older", "Older"),
	)

	resp, err := newHandler(q).Handle(context.Background(), request(map[string]string{"mode": "list"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []post.ListItem
	testutil.DecodeJSONBody(t, resp, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Slug)
	assert.Equal(t, "older", items[1].Slug)

	require.Len(t, q.Calls, 1)
	call := q.Calls[0]
	assert.Equal(t, "db-test", q.DatabaseID)
	assert.Equal(t, notion.PublishedFilter(), *call.Filter)
	assert.Equal(t, []notion.Sort{notion.LastEditedDescending()}, call.Sorts)
	assert.Zero(t, call.PageSize)
}

func TestHandle_ListDefaultsMode(t *testing.T) {
	for _, params := range []map[string]string{nil, {}, {"mode": ""}} {
		q := testutil.NewMockQuerier()
		resp, err := newHandler(q).Handle(context.Background(), request(params))
		require.NoError(t, err)
		testutil.AssertResponse(t, resp, http.StatusOK, "[]")
		assert.Len(t, q.Calls, 1)
	}
}

func TestHandle_ListCategoryFilter(t *testing.T) {
	q := testutil.NewMockQuerier()

	_, err := newHandler(q).Handle(context.Background(), request(map[string]string{"mode": "list", "category": "Foo"}))
	require.NoError(t, err)

	require.Len(t, q.Calls, 1)
	want := notion.Filter{And: []notion.Filter{notion.PublishedFilter(), notion.CategoryFilter("Foo")}}
	assert.Equal(t, want, *q.Calls[0].Filter)
}

func TestHandle_ListEmptyCategoryIgnored(t *testing.T) {
	q := testutil.NewMockQuerier()

	_, err := newHandler(q).Handle(context.Background(), request(map[string]string{"category": ""}))
	require.NoError(t, err)
	assert.Equal(t, notion.PublishedFilter(), *q.Calls[0].Filter)
}

func TestHandle_Detail(t *testing.T) {
	q := testutil.NewMockQuerier(testutil.PublishedPost("p1", "hello", "Hello"))

	resp, err := newHandler(q).Handle(context.Background(), request(map[string]string{"mode": "detail", "slug": "hello"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var detail post.Detail
	testutil.DecodeJSONBody(t, resp, &detail)
	assert.Equal(t, "p1", detail.ID)
	assert.Equal(t, "Hello", detail.Title)
	assert.Equal(t, "First paragraph of Hello.\n\nSecond paragraph.", detail.Content)

	call := q.Calls[0]
	assert.Equal(t, 1, call.PageSize)
	assert.Empty(t, call.Sorts)
	want := notion.Filter{And: []notion.Filter{notion.PublishedFilter(), notion.SlugFilter("hello")}}
	assert.Equal(t, want, *call.Filter)
}

func TestHandle_ClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		params     map[string]string
		pages      int
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{"detail without slug", map[string]string{"mode": "detail"}, 0, http.StatusBadRequest, "Missing slug", 0},
		{"detail with empty slug", map[string]string{"mode": "detail", "slug": ""}, 0, http.StatusBadRequest, "Missing slug", 0},
		{"unknown mode", map[string]string{"mode": "feed"}, 0, http.StatusBadRequest, "Invalid mode", 0},
		{"no match", map[string]string{"mode": "detail", "slug": "missing"}, 0, http.StatusNotFound, "Post not found", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testutil.NewMockQuerier()

			resp, err := newHandler(q).Handle(context.Background(), request(tt.params))
			require.NoError(t, err)
			testutil.AssertResponse(t, resp, tt.wantStatus, tt.wantBody)
			assert.Equal(t, "text/plain; charset=utf-8", resp.Headers["Content-Type"])
			assert.Len(t, q.Calls, tt.wantCalls)
		})
	}
}

func TestHandle_UpstreamFailureIsServerError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantLogged string
	}{
		{"upstream 500", http.StatusInternalServerError, `{"object":"error","status":500,"code":"internal_server_error","message":"Unexpected error occurred."}`, "Unexpected error occurred."},
		{"upstream 401", http.StatusUnauthorized, testutil.NotionErrorJSON, "API token is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewNotionErrorServer(tt.status, tt.body)
			defer server.Close()

			logger, logs := testutil.CaptureLogger()
			cfg := testutil.FunctionConfig(server.BaseURL())
			h := New(logger, cfg, notion.NewClient(logger, cfg.Notion))

			for _, params := range []map[string]string{
				{"mode": "list"},
				{"mode": "detail", "slug": "hello"},
			} {
				resp, err := h.Handle(context.Background(), request(params))
				require.NoError(t, err)
				testutil.AssertResponse(t, resp, http.StatusInternalServerError, "Server error")
				assert.NotContains(t, resp.Body, fmt.Sprint(tt.status))
			}

			testutil.AssertLogContains(t, logs.String(), fmt.Sprintf(`"status":%d`, tt.status))
			testutil.AssertLogContains(t, logs.String(), tt.wantLogged)
		})
	}
}

func TestHandle_InternalFailures(t *testing.T) {
	tests := []struct {
		name string
		q    *testutil.MockQuerier
	}{
		{"network error", &testutil.MockQuerier{Error: errors.New(errors.ErrorTypeNetwork, "dial tcp: refused")}},
		{"untyped error", &testutil.MockQuerier{Error: testutil.NewMockError("boom")}},
		{"panic", &testutil.MockQuerier{Panic: "nil map"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newHandler(tt.q).Handle(context.Background(), request(map[string]string{"mode": "list"}))
			require.NoError(t, err)
			testutil.AssertResponse(t, resp, http.StatusInternalServerError, "Server error")
		})
	}
}

func TestHandle_AgainstFakeNotion(t *testing.T) {
	draft := testutil.NewPage("draft").WithSlug("draft").WithPublished(false).Build()
	server := testutil.NewNotionServer(
		testutil.PublishedPost("1", "go-post", "Go"),
		testutil.NewPage("2").WithSlug("other").WithCategory("Life").WithPublished(true).Build(),
		draft,
	)
	defer server.Close()

	logger, _ := testutil.CaptureLogger()
	cfg := testutil.FunctionConfig(server.BaseURL())
	h := New(logger, cfg, notion.NewClient(logger, cfg.Notion))

	resp, err := h.Handle(context.Background(), request(map[string]string{"category": "Engineering"}))
	require.NoError(t, err)
	var items []post.ListItem
	testutil.DecodeJSONBody(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "go-post", items[0].Slug)

	resp, err = h.Handle(context.Background(), request(map[string]string{"mode": "detail", "slug": "draft"}))
	require.NoError(t, err)
	testutil.AssertResponse(t, resp, http.StatusNotFound, "Post not found")

	body := server.LastRequest().BodyMap()
	assert.Equal(t, float64(1), body["page_size"])
	assert.Contains(t, body["filter"], "and")
}

func TestRequestID(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-1"})
	assert.Equal(t, "aws-1", requestID(ctx, events.APIGatewayProxyRequest{}))

	req := events.APIGatewayProxyRequest{RequestContext: events.APIGatewayProxyRequestContext{RequestID: "gw-1"}}
	assert.Equal(t, "gw-1", requestID(context.Background(), req))

	assert.NotEmpty(t, requestID(context.Background(), events.APIGatewayProxyRequest{}))
}

func TestServeHTTP(t *testing.T) {
	q := testutil.NewMockQuerier(testutil.PublishedPost("p1", "hello", "Hello"))
	h := newHandler(q)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.netlify/functions/notion-blog?mode=detail&slug=hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"slug":"hello"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.netlify/functions/notion-blog?mode=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid mode", rec.Body.String())
}
