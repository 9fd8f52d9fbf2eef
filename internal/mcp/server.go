// Package mcp exposes the blog as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/logger"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	ServerName    = "notion-blog"
	ServerVersion = "1.0.0"

	ToolListPosts = "list_posts"
	ToolGetPost   = "get_post"

	defaultInstructions = "Read-only access to the published posts of a Notion-backed blog. " +
		"Use list_posts to discover posts and get_post with a slug to read one."
)

// PostReader reads posts. *blogclient.Client satisfies it.
type PostReader interface {
	ListPosts(ctx context.Context, category string) ([]post.ListItem, error)
	GetPost(ctx context.Context, slug string) (*post.Detail, error)
}

// Server serves the blog tools
type Server struct {
	logger zerolog.Logger
	config *config.Config
	posts  PostReader
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the blog tools registered
func NewServer(log zerolog.Logger, cfg *config.Config, posts PostReader) *Server {
	instructions := cfg.MCP.Description
	if instructions == "" {
		instructions = defaultInstructions
	}

	s := &Server{
		logger: logger.ForComponent(log, "mcp_server"),
		config: cfg,
		posts:  posts,
		mcp: server.NewMCPServer(ServerName, ServerVersion,
			server.WithToolCapabilities(false),
			server.WithInstructions(instructions),
		),
	}

	s.mcp.AddTool(mcp.NewTool(ToolListPosts,
		mcp.WithDescription("List published blog posts, most recently edited first"),
		mcp.WithString("category",
			mcp.Description("Only return posts in this category"),
		),
	), s.handleListPosts)

	s.mcp.AddTool(mcp.NewTool(ToolGetPost,
		mcp.WithDescription("Get the full content of one published blog post"),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("The post slug, as returned by list_posts"),
		),
	), s.handleGetPost)

	return s
}

// Start serves MCP over stdin/stdout until stdin closes
func (s *Server) Start() error {
	s.logger.Debug().Msg("MCP server started, reading from stdin")

	if err := server.ServeStdio(s.mcp); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "MCP server failed")
	}

	s.logger.Debug().Msg("MCP server stopped")
	return nil
}

func (s *Server) handleListPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, ToolListPosts)
	category := req.GetString("category", "")

	items, err := s.posts.ListPosts(ctx, category)
	if err != nil {
		log.Warn().Err(err).Str("category", category).Msg("tool call failed")
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	log.Debug().Int("count", len(items)).Msg("tool call served")
	return jsonResult(items)
}

func (s *Server) handleGetPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, ToolGetPost)
	slug := req.GetString("slug", "")
	if slug == "" {
		return mcp.NewToolResultError("slug is required"), nil
	}

	detail, err := s.posts.GetPost(ctx, slug)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("tool call failed")
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	log.Debug().Str("slug", slug).Msg("tool call served")
	return jsonResult(detail)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
