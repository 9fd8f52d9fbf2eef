package cli

import (
	"fmt"

	"github.com/brendan.keane/notion-blog/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DocsHandler prints the API description
type DocsHandler struct {
	logger zerolog.Logger
}

// NewDocsHandler creates a new docs command handler
func NewDocsHandler(logger zerolog.Logger) *DocsHandler {
	return &DocsHandler{
		logger: logger.With().Str("handler", "docs").Logger(),
	}
}

// Execute renders the embedded OpenAPI document, or prints it verbatim
// with --raw
func (h *DocsHandler) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if f := cmd.Flags().Lookup("raw"); f != nil && f.Value.String() == "true" {
		_, err := out.Write(openapi.Raw())
		return err
	}

	doc, err := openapi.Load()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load API description")
		return err
	}

	_, err = fmt.Fprint(out, openapi.Render(doc))
	return err
}
