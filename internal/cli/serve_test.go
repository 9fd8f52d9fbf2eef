package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/testutil"
)

func TestServeHandler_BuildRejectsInvalidConfig(t *testing.T) {
	logger, _ := testutil.CaptureLogger()

	_, err := NewServeHandler(logger).Build(config.NewConfig())
	if !errors.IsType(err, errors.ErrorTypeConfig) {
		t.Errorf("Build() error = %v, want config error", err)
	}
}

func TestServeHandler_BuildServesFunction(t *testing.T) {
	notion := testutil.NewNotionServer(testutil.PublishedPost("p1", "hello-world", "Hello World"))
	defer notion.Close()

	logger, _ := testutil.CaptureLogger()
	srv, err := NewServeHandler(logger).Build(testutil.FunctionConfig(notion.BaseURL()))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, config.DefaultFunctionPath+"?mode=list", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
	var items []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(items) != 1 || items[0]["slug"] != "hello-world" {
		t.Errorf("items = %v", items)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Errorf("openapi.yaml status = %d, len = %d", rec.Code, rec.Body.Len())
	}
}

func TestServeHandler_ExecuteStopsWithContext(t *testing.T) {
	testutil.SkipIfShort(t, "binds a local port")

	logger, _ := testutil.CaptureLogger()
	cfg := testutil.NewConfigBuilder().Build()
	cfg.Serve.Addr = "127.0.0.1:0"

	cmd, _ := newCommand(cfg)
	ctx, cancel := context.WithCancel(cmd.Context())
	cancel()
	cmd.SetContext(ctx)

	if err := NewServeHandler(logger).Execute(cmd, nil); err != nil {
		t.Errorf("Execute() error = %v, want clean shutdown", err)
	}
}
