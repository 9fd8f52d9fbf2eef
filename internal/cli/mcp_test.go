package cli

import (
	"context"
	"os"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/mcp"
	"github.com/brendan.keane/notion-blog/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func TestNewMCPHandler(t *testing.T) {
	logger := zerolog.New(os.Stderr)

	handler := NewMCPHandler(logger)
	if handler == nil {
		t.Fatal("NewMCPHandler should return non-nil handler")
	}
}

func TestMCPHandler_Execute_InvalidConfig(t *testing.T) {
	logger, _ := testutil.CaptureLogger()
	handler := NewMCPHandler(logger)

	// No endpoint configured, so the server never starts
	cmd, _ := newCommand(testutil.NewConfigBuilder().Build())

	err := handler.Execute(cmd, []string{})
	if !errors.IsType(err, errors.ErrorTypeConfig) {
		t.Errorf("Execute() error = %v, want config error", err)
	}
}

func TestMCPHandler_FlagFallback(t *testing.T) {
	logger, _ := testutil.CaptureLogger()
	handler := NewMCPHandler(logger)

	// Without a config on the context the handler reads the flags, which
	// this bare command does not define
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	if err := handler.Execute(cmd, []string{}); err == nil {
		t.Error("Execute should error with undefined flags")
	}
}

func TestMCPHandler_Build(t *testing.T) {
	logger, _ := testutil.CaptureLogger()
	handler := NewMCPHandler(logger)

	var gotConfig *config.Config
	handler.newReader = func(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (mcp.PostReader, error) {
		gotConfig = cfg
		return &fakeReader{}, nil
	}

	cfg := testutil.NewConfigBuilder().WithEndpoint("lambda://notion-blog").Build()
	cfg.MCP.Description = "Posts from my blog"
	cmd, _ := newCommand(cfg)

	server, err := handler.build(cmd)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if server == nil {
		t.Fatal("build() returned nil server")
	}
	if gotConfig != cfg {
		t.Error("reader factory should receive the context configuration")
	}
}
