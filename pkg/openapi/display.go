package openapi

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B47E0")).
			Padding(0, 2)

	methodStyles = map[string]lipgloss.Style{
		"GET": lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#61AFEF")).
			Padding(0, 1),
		"POST": lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#98C379")).
			Padding(0, 1),
	}

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ABB2BF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF")).
			MarginTop(1)

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98C379"))

	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75")).
			Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ABB2BF")).
				MarginLeft(2)

	codeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2C323C")).
			Foreground(lipgloss.Color("#ABB2BF")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B47E0")).
			Padding(1).
			MarginTop(1).
			MarginBottom(1)
)

// Render draws the document for a terminal
func Render(doc *Document) string {
	var output strings.Builder

	title, version := doc.Title()
	header := fmt.Sprintf(" %s ", title)
	if version != "" {
		header += fmt.Sprintf("v%s ", version)
	}
	output.WriteString(titleStyle.Render(header))
	output.WriteString("\n\n")

	if description := doc.Description(); description != "" {
		output.WriteString(summaryStyle.Render(description))
		output.WriteString("\n")
	}

	base := strings.TrimSuffix(doc.ServerURL(), "/")
	ops := doc.Operations()
	if len(ops) == 0 {
		output.WriteString(summaryStyle.Render("No operations described"))
		return output.String()
	}

	for _, op := range ops {
		output.WriteString(renderOperation(base, op))
	}

	return output.String()
}

func renderOperation(base string, op Operation) string {
	var output strings.Builder

	output.WriteString(getMethodStyle(op.Method).Render(op.Method))
	output.WriteString(" ")
	output.WriteString(pathStyle.Render(base + op.Path))
	output.WriteString("\n\n")

	if op.Summary != "" {
		output.WriteString(summaryStyle.Render(op.Summary))
		output.WriteString("\n")
	}

	if op.Description != "" && op.Description != op.Summary {
		output.WriteString("\n")
		output.WriteString(descriptionStyle.Render(op.Description))
		output.WriteString("\n")
	}

	if len(op.Parameters) > 0 {
		output.WriteString("\n")
		output.WriteString(sectionStyle.Render("Parameters"))
		output.WriteString("\n\n")
		for _, p := range op.Parameters {
			output.WriteString(renderParameter(p))
		}
	}

	if len(op.Responses) > 0 {
		output.WriteString("\n")
		output.WriteString(sectionStyle.Render("Responses"))
		output.WriteString("\n\n")
		for _, r := range op.Responses {
			output.WriteString(renderResponse(r))
		}
	}

	return boxStyle.Render(output.String())
}

func renderParameter(param Parameter) string {
	var output strings.Builder

	output.WriteString("  • ")
	output.WriteString(paramStyle.Render(param.Name))
	output.WriteString(" ")
	output.WriteString(summaryStyle.Render("(" + param.In + ")"))

	if param.Required {
		output.WriteString(" ")
		output.WriteString(requiredStyle.Render("*required"))
	}

	if param.Type != "" {
		output.WriteString(" ")
		output.WriteString(codeStyle.Render(param.Type))
	}

	output.WriteString("\n")

	if param.Description != "" {
		output.WriteString(descriptionStyle.Render(fmt.Sprintf("    %s", param.Description)))
		output.WriteString("\n")
	}

	return output.String()
}

func renderResponse(r Response) string {
	var output strings.Builder

	output.WriteString("  ")
	output.WriteString(getStatusStyle(r.Code).Render(r.Code))

	if r.Description != "" {
		output.WriteString(" - ")
		output.WriteString(summaryStyle.Render(r.Description))
	}

	if r.ContentType != "" {
		output.WriteString(" ")
		output.WriteString(codeStyle.Render(r.ContentType))
	}

	output.WriteString("\n")
	return output.String()
}

func getMethodStyle(method string) lipgloss.Style {
	if style, ok := methodStyles[method]; ok {
		return style
	}
	return methodStyles["GET"]
}

func getStatusStyle(code string) lipgloss.Style {
	if code == "default" || code == "" {
		return codeStyle
	}

	switch code[0] {
	case '2':
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98C379")).
			Bold(true)
	case '4':
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B")).
			Bold(true)
	case '5':
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75")).
			Bold(true)
	}

	return codeStyle
}
