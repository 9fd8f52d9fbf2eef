// Package testutil provides shared testing utilities and fixtures
package testutil

import (
	"encoding/json"

	"github.com/brendan.keane/notion-blog/internal/notion"
)

// DefaultLastEdited is the timestamp fixtures use unless overridden
const DefaultLastEdited = "2024-05-01T09:30:00.000Z"

// PageBuilder provides a fluent interface for building upstream pages
type PageBuilder struct {
	page notion.Page
}

// NewPage creates a page builder with an ID and an empty property set
func NewPage(id string) *PageBuilder {
	return &PageBuilder{
		page: notion.Page{
			Object:         "page",
			ID:             id,
			LastEditedTime: DefaultLastEdited,
			Properties:     notion.Properties{},
		},
	}
}

func richText(segments []string) []notion.RichText {
	out := make([]notion.RichText, 0, len(segments))
	for _, s := range segments {
		out = append(out, notion.RichText{PlainText: s})
	}
	return out
}

func options(names []string) []notion.SelectOption {
	out := make([]notion.SelectOption, 0, len(names))
	for _, n := range names {
		out = append(out, notion.SelectOption{Name: n})
	}
	return out
}

// WithTitle sets the Title property from text segments
func (b *PageBuilder) WithTitle(segments ...string) *PageBuilder {
	b.page.Properties[notion.PropTitle] = notion.Property{Type: "title", Title: richText(segments)}
	return b
}

// WithSlug sets the Slug property
func (b *PageBuilder) WithSlug(segments ...string) *PageBuilder {
	b.page.Properties[notion.PropSlug] = notion.Property{Type: "rich_text", RichText: richText(segments)}
	return b
}

// WithTag sets the singular Tag multi-select
func (b *PageBuilder) WithTag(names ...string) *PageBuilder {
	b.page.Properties[notion.PropTag] = notion.Property{Type: "multi_select", MultiSelect: options(names)}
	return b
}

// WithTags sets the plural Tags multi-select
func (b *PageBuilder) WithTags(names ...string) *PageBuilder {
	b.page.Properties[notion.PropTags] = notion.Property{Type: "multi_select", MultiSelect: options(names)}
	return b
}

// WithCategory sets the Category select
func (b *PageBuilder) WithCategory(name string) *PageBuilder {
	b.page.Properties[notion.PropCategory] = notion.Property{Type: "select", Select: &notion.SelectOption{Name: name}}
	return b
}

// WithHostedCover sets a Notion-hosted cover file
func (b *PageBuilder) WithHostedCover(url string) *PageBuilder {
	b.page.Properties[notion.PropCoverImage] = notion.Property{
		Type: "files",
		Files: []notion.FileObject{{
			Name: "cover.png",
			Type: "file",
			File: &notion.FileLink{URL: url, ExpiryTime: "2024-05-01T10:30:00.000Z"},
		}},
	}
	return b
}

// WithExternalCover sets an externally linked cover file
func (b *PageBuilder) WithExternalCover(url string) *PageBuilder {
	b.page.Properties[notion.PropCoverImage] = notion.Property{
		Type: "files",
		Files: []notion.FileObject{{
			Name:     url,
			Type:     "external",
			External: &notion.FileLink{URL: url},
		}},
	}
	return b
}

// WithContent sets the Content rich text from segments
func (b *PageBuilder) WithContent(segments ...string) *PageBuilder {
	b.page.Properties[notion.PropContent] = notion.Property{Type: "rich_text", RichText: richText(segments)}
	return b
}

// WithPublished sets the Published checkbox
func (b *PageBuilder) WithPublished(published bool) *PageBuilder {
	b.page.Properties[notion.PropPublished] = notion.Property{Type: "checkbox", Checkbox: published}
	return b
}

// WithLastEdited overrides the last-edited timestamp
func (b *PageBuilder) WithLastEdited(ts string) *PageBuilder {
	b.page.LastEditedTime = ts
	return b
}

// WithoutProperties drops the whole property set
func (b *PageBuilder) WithoutProperties() *PageBuilder {
	b.page.Properties = nil
	return b
}

// Build returns the page
func (b *PageBuilder) Build() notion.Page {
	return b.page
}

// PublishedPost returns a fully populated published page
func PublishedPost(id, slug, title string) notion.Page {
	return NewPage(id).
		WithTitle(title).
		WithSlug(slug).
		WithTags("go", "notion").
		WithCategory("Engineering").
		WithHostedCover("https://files.example.com/" + slug + ".png").
		WithContent("First paragraph of "+title+".", "Second paragraph.").
		WithPublished(true).
		Build()
}

// QueryResponseJSON encodes pages as a database query response body
func QueryResponseJSON(pages ...notion.Page) string {
	if pages == nil {
		pages = []notion.Page{}
	}
	body, _ := json.Marshal(notion.QueryResponse{
		Object:  "list",
		Results: pages,
	})
	return string(body)
}

// NotionErrorJSON is a representative upstream error body
const NotionErrorJSON = `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`
