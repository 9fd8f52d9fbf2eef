package cli

import (
	"context"

	"github.com/brendan.keane/notion-blog/internal/blogclient"
	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ReaderFactory builds the post reader a command talks to
type ReaderFactory func(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (mcp.PostReader, error)

// NewRemoteReader reads posts from the deployed function
func NewRemoteReader(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (mcp.PostReader, error) {
	client, err := blogclient.New(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ListHandler handles the list command
type ListHandler struct {
	logger    zerolog.Logger
	newReader ReaderFactory
}

// NewListHandler creates a new list command handler
func NewListHandler(logger zerolog.Logger) *ListHandler {
	return &ListHandler{
		logger:    logger.With().Str("handler", "list").Logger(),
		newReader: NewRemoteReader,
	}
}

// Execute lists published posts
func (h *ListHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to get category flag")
	}

	reader, err := h.newReader(cmd.Context(), h.logger, cfg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create client")
		return err
	}

	items, err := reader.ListPosts(cmd.Context(), category)
	if err != nil {
		h.logger.Debug().Err(err).Str("category", category).Msg("list failed")
		return err
	}

	h.logger.Debug().Int("count", len(items)).Str("category", category).Msg("posts listed")
	return RenderList(cmd.OutOrStdout(), items, cfg.Client.Output)
}

// GetHandler handles the get command
type GetHandler struct {
	logger    zerolog.Logger
	newReader ReaderFactory
}

// NewGetHandler creates a new get command handler
func NewGetHandler(logger zerolog.Logger) *GetHandler {
	return &GetHandler{
		logger:    logger.With().Str("handler", "get").Logger(),
		newReader: NewRemoteReader,
	}
}

// Execute fetches one post by slug
func (h *GetHandler) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New(errors.ErrorTypeValidation, "slug is required").
			WithContext("field", "slug")
	}
	slug := args[0]

	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	reader, err := h.newReader(cmd.Context(), h.logger, cfg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create client")
		return err
	}

	detail, err := reader.GetPost(cmd.Context(), slug)
	if err != nil {
		h.logger.Debug().Err(err).Str("slug", slug).Msg("get failed")
		return err
	}

	return RenderDetail(cmd.OutOrStdout(), detail, cfg.Client.Output)
}
