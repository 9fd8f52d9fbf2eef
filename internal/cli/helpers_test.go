package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/handler"
	"github.com/brendan.keane/notion-blog/internal/mcp"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/brendan.keane/notion-blog/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type fakeReader struct {
	items      []post.ListItem
	detail     *post.Detail
	err        error
	categories []string
	slugs      []string
}

func (f *fakeReader) ListPosts(ctx context.Context, category string) ([]post.ListItem, error) {
	f.categories = append(f.categories, category)
	return f.items, f.err
}

func (f *fakeReader) GetPost(ctx context.Context, slug string) (*post.Detail, error) {
	f.slugs = append(f.slugs, slug)
	return f.detail, f.err
}

func readerFactory(r mcp.PostReader) ReaderFactory {
	return func(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (mcp.PostReader, error) {
		return r, nil
	}
}

// newCommand returns a command carrying cfg on its context, with the
// flags the handlers read
func newCommand(cfg *config.Config) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("category", "c", "", "")
	cmd.Flags().Bool("raw", false, "")

	out := &bytes.Buffer{}
	cmd.SetOut(out)

	ctx := context.Background()
	if cfg != nil {
		ctx = config.WithConfig(ctx, cfg)
	}
	cmd.SetContext(ctx)
	return cmd, out
}

// functionServer runs the function over HTTP against an in-memory database
func functionServer(t *testing.T, q *testutil.MockQuerier) *httptest.Server {
	t.Helper()
	logger, _ := testutil.CaptureLogger()
	srv := httptest.NewServer(handler.New(logger, testutil.NewConfigBuilder().Build(), q))
	t.Cleanup(srv.Close)
	return srv
}

func samplePosts() []post.ListItem {
	return []post.ListItem{
		post.ToListItem(testutil.PublishedPost("p1", "hello-world", "Hello World")),
		post.ToListItem(testutil.PublishedPost("p2", "second", "Second Post")),
		post.ToListItem(testutil.NewPage("p3").WithTitle("Draft-ish").WithSlug("other").WithCategory("Life").Build()),
	}
}
