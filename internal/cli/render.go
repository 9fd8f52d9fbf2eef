package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTable  = "table"
	FormatDetail = "detail"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

const noneValue = "-"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B47E0")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ABB2BF")).
			Width(10)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98C379"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ABB2BF"))

	contentStyle = lipgloss.NewStyle().
			MarginTop(1)
)

// RenderList writes list items in the requested format
func RenderList(w io.Writer, items []post.ListItem, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, items)
	case FormatYAML:
		return writeYAML(w, items)
	case "", FormatTable, FormatDetail:
		_, err := fmt.Fprintln(w, listTable(items))
		return err
	}
	return unsupportedFormat(format)
}

// RenderDetail writes a single post in the requested format
func RenderDetail(w io.Writer, d *post.Detail, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, d)
	case FormatYAML:
		return writeYAML(w, d)
	case "", FormatTable, FormatDetail:
		_, err := fmt.Fprintln(w, detailView(d))
		return err
	}
	return unsupportedFormat(format)
}

func listTable(items []post.ListItem) string {
	if len(items) == 0 {
		return mutedStyle.Render("No posts found")
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Slug,
			item.Title,
			optional(item.Category),
			strings.Join(item.Tags, ", "),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#5B47E0"))).
		Headers("SLUG", "TITLE", "CATEGORY", "TAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func detailView(d *post.Detail) string {
	var output strings.Builder

	output.WriteString(titleStyle.Render(d.Title))
	output.WriteString("\n\n")

	output.WriteString(labelStyle.Render("slug"))
	output.WriteString(valueOrNone(d.Slug))
	output.WriteString("\n")

	output.WriteString(labelStyle.Render("category"))
	output.WriteString(optional(d.Category))
	output.WriteString("\n")

	output.WriteString(labelStyle.Render("tags"))
	if len(d.Tags) == 0 {
		output.WriteString(noneValue)
	} else {
		output.WriteString(tagStyle.Render(strings.Join(d.Tags, ", ")))
	}
	output.WriteString("\n")

	output.WriteString(labelStyle.Render("cover"))
	output.WriteString(optional(d.CoverImage))
	output.WriteString("\n")

	if d.Content != "" {
		output.WriteString(contentStyle.Render(d.Content))
		output.WriteString("\n")
	}

	return output.String()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode YAML")
	}
	return enc.Close()
}

func unsupportedFormat(format string) error {
	return errors.New(errors.ErrorTypeValidation, "unsupported output format").
		WithContext("field", "output").
		WithContext("format", format)
}

func optional(s *string) string {
	if s == nil {
		return noneValue
	}
	return valueOrNone(*s)
}

func valueOrNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}
