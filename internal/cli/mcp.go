package cli

import (
	"github.com/brendan.keane/notion-blog/internal/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// MCPHandler handles MCP server commands
type MCPHandler struct {
	logger    zerolog.Logger
	newReader ReaderFactory
}

// NewMCPHandler creates a new MCP command handler
func NewMCPHandler(logger zerolog.Logger) *MCPHandler {
	return &MCPHandler{
		logger:    logger.With().Str("handler", "mcp").Logger(),
		newReader: NewRemoteReader,
	}
}

// Execute serves the blog tools over stdio
func (h *MCPHandler) Execute(cmd *cobra.Command, args []string) error {
	server, err := h.build(cmd)
	if err != nil {
		return err
	}

	h.logger.Debug().Msg("MCP server created, starting message loop")
	return server.Start()
}

func (h *MCPHandler) build(cmd *cobra.Command) (*mcp.Server, error) {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return nil, err
	}

	reader, err := h.newReader(cmd.Context(), h.logger, cfg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	h.logger.Debug().
		Str("endpoint", cfg.Client.Endpoint).
		Bool("sigv4", cfg.Client.SigV4Enabled).
		Msg("starting MCP server")

	return mcp.NewServer(h.logger, cfg, reader), nil
}
