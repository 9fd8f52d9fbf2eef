package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID between the dev server, the
// client and the function.
const RequestIDHeader = "X-Request-Id"

// RequestToEvent converts an http.Request to an API Gateway v1 proxy event
func RequestToEvent(req *http.Request) (events.APIGatewayProxyRequest, error) {
	var body string
	var isBase64Encoded bool

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, fmt.Errorf("reading request body: %w", err)
		}
		// Restore body for potential retries
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if utf8.Valid(bodyBytes) {
			body = string(bodyBytes)
		} else {
			body = base64.StdEncoding.EncodeToString(bodyBytes)
			isBase64Encoded = true
		}
	}

	headers := make(map[string]string, len(req.Header)+1)
	multiHeaders := make(map[string][]string, len(req.Header)+1)
	for key, values := range req.Header {
		headers[key] = strings.Join(values, ",")
		multiHeaders[key] = values
	}
	if req.Host != "" {
		headers["Host"] = req.Host
		multiHeaders["Host"] = []string{req.Host}
	}

	query := req.URL.Query()
	params := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	now := time.Now()
	return events.APIGatewayProxyRequest{
		Resource:                        path,
		Path:                            path,
		HTTPMethod:                      req.Method,
		Headers:                         headers,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           params,
		MultiValueQueryStringParameters: map[string][]string(query),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        requestID,
			HTTPMethod:       req.Method,
			Path:             path,
			Protocol:         "HTTP/1.1",
			Stage:            "$default",
			RequestTime:      now.Format("02/Jan/2006:15:04:05 -0700"),
			RequestTimeEpoch: now.UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP(req),
				UserAgent: req.UserAgent(),
			},
		},
		Body:            body,
		IsBase64Encoded: isBase64Encoded,
	}, nil
}

func sourceIP(req *http.Request) string {
	if req.RemoteAddr == "" {
		return "127.0.0.1"
	}
	if i := strings.LastIndex(req.RemoteAddr, ":"); i > 0 {
		return req.RemoteAddr[:i]
	}
	return req.RemoteAddr
}

// decodeBody returns the raw bytes of a proxy response body
func decodeBody(resp events.APIGatewayProxyResponse) ([]byte, error) {
	if !resp.IsBase64Encoded {
		return []byte(resp.Body), nil
	}
	data, err := base64.StdEncoding.DecodeString(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 body: %w", err)
	}
	return data, nil
}

// PayloadToResponse converts a Lambda invocation payload to an http.Response
func PayloadToResponse(payload []byte) (*http.Response, error) {
	var proxyResp events.APIGatewayProxyResponse
	if err := json.Unmarshal(payload, &proxyResp); err != nil {
		return nil, fmt.Errorf("parsing Lambda response: %w", err)
	}
	if proxyResp.StatusCode == 0 {
		return nil, fmt.Errorf("Lambda response has no status code")
	}

	bodyBytes, err := decodeBody(proxyResp)
	if err != nil {
		return nil, err
	}

	resp := &http.Response{
		StatusCode:    proxyResp.StatusCode,
		Status:        fmt.Sprintf("%d %s", proxyResp.StatusCode, http.StatusText(proxyResp.StatusCode)),
		Header:        make(http.Header),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Body:          io.NopCloser(bytes.NewReader(bodyBytes)),
		ContentLength: int64(len(bodyBytes)),
	}
	for key, value := range proxyResp.Headers {
		resp.Header.Set(key, value)
	}
	for key, values := range proxyResp.MultiValueHeaders {
		for _, v := range values {
			resp.Header.Add(key, v)
		}
	}

	return resp, nil
}

// WriteResponse writes a proxy response to w
func WriteResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) error {
	bodyBytes, err := decodeBody(resp)
	if err != nil {
		return err
	}

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	for key, values := range resp.MultiValueHeaders {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err = w.Write(bodyBytes)
	return err
}
