package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/handler"
	"github.com/brendan.keane/notion-blog/internal/notion"
	"github.com/brendan.keane/notion-blog/internal/server"
	"github.com/brendan.keane/notion-blog/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ServeHandler runs the function behind a local HTTP server
type ServeHandler struct {
	logger zerolog.Logger
}

// NewServeHandler creates a new serve command handler
func NewServeHandler(logger zerolog.Logger) *ServeHandler {
	return &ServeHandler{
		logger: logger.With().Str("handler", "serve").Logger(),
	}
}

// Execute serves until interrupted
func (h *ServeHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	srv, err := h.Build(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return h.run(ctx, srv)
}

// Build wires the Notion client, the function handler and the HTTP server
func (h *ServeHandler) Build(cfg *config.Config) (*server.Server, error) {
	if err := cfg.Validate(); err != nil {
		h.logger.Error().Err(err).Msg("invalid function configuration")
		return nil, err
	}

	client := notion.NewClient(h.logger, cfg.Notion)
	fn := handler.New(h.logger, cfg, client)
	return server.New(h.logger, cfg, fn, openapi.Raw()), nil
}

func (h *ServeHandler) run(ctx context.Context, srv *server.Server) error {
	if err := srv.ListenAndServe(ctx); err != nil {
		h.logger.Error().Err(err).Msg("server stopped")
		return err
	}
	return nil
}
