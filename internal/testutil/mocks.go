package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/brendan.keane/notion-blog/internal/notion"
	"github.com/rs/zerolog"
)

// MockHTTPClient records requests and returns a canned response
type MockHTTPClient struct {
	Response *http.Response
	Error    error
	Requests []*http.Request
}

// Do implements the HTTP doer interfaces used across packages
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.Error
}

// NewMockHTTPClient creates a mock HTTP client with the given response and error
func NewMockHTTPClient(body string, statusCode int, headers map[string]string, err error) *MockHTTPClient {
	var resp *http.Response
	if err == nil {
		resp = &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}

		for key, value := range headers {
			resp.Header.Set(key, value)
		}
	}

	return &MockHTTPClient{
		Response: resp,
		Error:    err,
		Requests: make([]*http.Request, 0),
	}
}

// MockQuerier is an in-memory stand-in for the Notion client
type MockQuerier struct {
	Response   *notion.QueryResponse
	Error      error
	Panic      interface{}
	Calls      []notion.QueryRequest
	DatabaseID string
}

// QueryDatabase records the call and returns the canned result
func (m *MockQuerier) QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResponse, error) {
	m.Calls = append(m.Calls, req)
	m.DatabaseID = databaseID
	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Response == nil {
		return &notion.QueryResponse{Object: "list"}, nil
	}
	return m.Response, nil
}

// NewMockQuerier returns a querier answering with pages
func NewMockQuerier(pages ...notion.Page) *MockQuerier {
	return &MockQuerier{
		Response: &notion.QueryResponse{Object: "list", Results: pages},
	}
}

// MockLambdaInvoker records direct Lambda invocations
type MockLambdaInvoker struct {
	Payload       []byte
	FunctionError *string
	Error         error
	Inputs        []*lambda.InvokeInput
}

// Invoke implements the Lambda invoker interface
func (m *MockLambdaInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	m.Inputs = append(m.Inputs, params)
	if m.Error != nil {
		return nil, m.Error
	}
	return &lambda.InvokeOutput{
		StatusCode:    200,
		Payload:       m.Payload,
		FunctionError: m.FunctionError,
	}, nil
}

// CaptureLogger returns a JSON logger writing into the returned buffer
func CaptureLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}

// MockError provides a simple error implementation for testing
type MockError struct {
	Message string
}

// Error implements the error interface
func (e *MockError) Error() string {
	return e.Message
}

// NewMockError creates a new mock error
func NewMockError(message string) *MockError {
	return &MockError{Message: message}
}
