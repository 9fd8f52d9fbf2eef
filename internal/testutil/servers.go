package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/brendan.keane/notion-blog/internal/notion"
)

// RecordedRequest is one request seen by a fake server
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Query decodes the recorded body as a database query
func (r RecordedRequest) Query() notion.QueryRequest {
	var q notion.QueryRequest
	_ = json.Unmarshal(r.Body, &q)
	return q
}

// BodyMap decodes the recorded body into a generic map
func (r RecordedRequest) BodyMap() map[string]interface{} {
	var m map[string]interface{}
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// NotionServer is a fake Notion API that answers database queries from an
// in-memory page list, applying the filters this service sends.
type NotionServer struct {
	*httptest.Server

	mu         sync.Mutex
	pages      []notion.Page
	status     int
	errorBody  string
	requests   []RecordedRequest
	rawResults string
}

// NewNotionServer starts a fake Notion API holding pages
func NewNotionServer(pages ...notion.Page) *NotionServer {
	s := &NotionServer{pages: pages}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// NewNotionErrorServer starts a fake Notion API that always fails
func NewNotionErrorServer(status int, body string) *NotionServer {
	s := &NotionServer{status: status, errorBody: body}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// NewNotionRawServer starts a fake Notion API that returns body verbatim
func NewNotionRawServer(body string) *NotionServer {
	s := &NotionServer{rawResults: body}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// BaseURL returns the URL to use as the Notion API base
func (s *NotionServer) BaseURL() string {
	return s.URL + "/v1"
}

// LastRequest returns the most recent request, or a zero value
func (s *NotionServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *NotionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	if s.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		w.Write([]byte(s.errorBody))
		return
	}

	if r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, "/v1/databases/") || !strings.HasSuffix(r.URL.Path, "/query") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if s.rawResults != "" {
		w.Write([]byte(s.rawResults))
		return
	}

	var q notion.QueryRequest
	if err := json.Unmarshal(body, &q); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"object":"error","status":400,"code":"invalid_json"}`))
		return
	}

	var matched []notion.Page
	for _, p := range s.pages {
		if q.Filter == nil || matches(p, *q.Filter) {
			matched = append(matched, p)
		}
	}
	if q.PageSize > 0 && len(matched) > q.PageSize {
		matched = matched[:q.PageSize]
	}

	w.Write([]byte(QueryResponseJSON(matched...)))
}

func matches(p notion.Page, f notion.Filter) bool {
	if len(f.And) > 0 {
		for _, sub := range f.And {
			if !matches(p, sub) {
				return false
			}
		}
		return true
	}

	prop, _ := p.Properties.Get(f.Property)
	switch {
	case f.Checkbox != nil:
		return prop.Checkbox == f.Checkbox.Equals
	case f.RichText != nil:
		return notion.JoinPlainText(prop.RichText, "") == f.RichText.Equals
	case f.Select != nil:
		return prop.Select != nil && prop.Select.Name == f.Select.Equals
	}
	return true
}
