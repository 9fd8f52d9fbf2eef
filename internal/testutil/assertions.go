package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

// AssertErrorContains fails the test if err is nil or doesn't contain the expected substring
func AssertErrorContains(t *testing.T, err error, expected string, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error containing %q, got none", msg, expected)
	}
	if !strings.Contains(err.Error(), expected) {
		t.Fatalf("%s: expected error containing %q, got %q", msg, expected, err.Error())
	}
}

// AssertResponse checks the status and exact body of a function response
func AssertResponse(t *testing.T, resp events.APIGatewayProxyResponse, status int, body string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("status: got %d, expected %d (body %q)", resp.StatusCode, status, resp.Body)
	}
	if resp.Body != body {
		t.Fatalf("body: got %q, expected %q", resp.Body, body)
	}
}

// DecodeJSONBody decodes a function response body into v
func DecodeJSONBody(t *testing.T, resp events.APIGatewayProxyResponse, v interface{}) {
	t.Helper()
	if ct := resp.Headers["Content-Type"]; ct != "application/json" {
		t.Fatalf("Content-Type: got %q, expected application/json", ct)
	}
	if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
		t.Fatalf("decoding body %q: %v", resp.Body, err)
	}
}

// AssertLogContains fails the test if the captured log output lacks substring
func AssertLogContains(t *testing.T, logs string, substring string) {
	t.Helper()
	if !strings.Contains(logs, substring) {
		t.Fatalf("expected logs to contain %q, got:\n%s", substring, logs)
	}
}

// SkipIfShort skips the test if running in short mode
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("Skipping in short mode: %s", reason)
	}
}
