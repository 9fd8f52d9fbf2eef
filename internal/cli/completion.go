package cli

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Completer suggests slugs and categories from the live function
type Completer struct {
	newReader ReaderFactory
}

// NewCompleter creates a completer backed by the remote function
func NewCompleter() *Completer {
	return &Completer{newReader: NewRemoteReader}
}

// Slugs completes the slug argument of get
func (c *Completer) Slugs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var slugs []string
	ok := c.visit(cmd, func(slug, category string) {
		if slug != "" && strings.HasPrefix(slug, toComplete) {
			slugs = append(slugs, slug)
		}
	})
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}
	return slugs, cobra.ShellCompDirectiveNoFileComp
}

// Categories completes the --category flag of list
func (c *Completer) Categories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	seen := make(map[string]bool)
	ok := c.visit(cmd, func(slug, category string) {
		if category != "" && strings.HasPrefix(category, toComplete) {
			seen[category] = true
		}
	})
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, cobra.ShellCompDirectiveNoFileComp
}

// visit calls fn for every listed post; completion never logs
func (c *Completer) visit(cmd *cobra.Command, fn func(slug, category string)) bool {
	logger := zerolog.Nop()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return false
	}

	reader, err := c.newReader(cmd.Context(), logger, cfg)
	if err != nil {
		return false
	}

	items, err := reader.ListPosts(cmd.Context(), "")
	if err != nil {
		return false
	}

	for _, item := range items {
		category := ""
		if item.Category != nil {
			category = *item.Category
		}
		fn(item.Slug, category)
	}
	return true
}
