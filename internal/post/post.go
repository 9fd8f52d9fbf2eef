// Package post shapes upstream pages into the JSON views the site reads.
package post

import (
	"github.com/brendan.keane/notion-blog/internal/notion"
)

const (
	// DefaultTitle is used when a page has no title text.
	DefaultTitle = "(no title)"

	// PreviewLength caps the list preview, counted in characters.
	PreviewLength = 160

	// ContentSeparator joins content segments with a blank line.
	ContentSeparator = "\n\n"
)

// ListItem is one entry of the published post list.
type ListItem struct {
	ID         string   `json:"id" yaml:"id"`
	Slug       string   `json:"slug" yaml:"slug"`
	Title      string   `json:"title" yaml:"title"`
	Tags       []string `json:"tags" yaml:"tags"`
	Category   *string  `json:"category" yaml:"category"`
	CoverImage *string  `json:"coverImage" yaml:"coverImage"`
	Preview    string   `json:"preview" yaml:"preview"`
	LastEdited string   `json:"lastEdited" yaml:"lastEdited"`
}

// Detail is a single post with its full content.
type Detail struct {
	ID         string   `json:"id" yaml:"id"`
	Slug       string   `json:"slug" yaml:"slug"`
	Title      string   `json:"title" yaml:"title"`
	Tags       []string `json:"tags" yaml:"tags"`
	Category   *string  `json:"category" yaml:"category"`
	CoverImage *string  `json:"coverImage" yaml:"coverImage"`
	Content    string   `json:"content" yaml:"content"`
	LastEdited string   `json:"lastEdited" yaml:"lastEdited"`
}

// fields are the values shared by both views.
type fields struct {
	title      string
	slug       string
	tags       []string
	category   *string
	coverImage *string
	content    string
}

func extract(page notion.Page) fields {
	props := page.Properties

	f := fields{
		title: DefaultTitle,
		tags:  []string{},
	}

	if prop, ok := props.Get(notion.PropTitle); ok {
		if t := notion.JoinPlainText(prop.Title, ""); t != "" {
			f.title = t
		}
	}

	if prop, ok := props.Get(notion.PropSlug); ok {
		f.slug = notion.JoinPlainText(prop.RichText, "")
	}

	// Tag wins over Tags whenever it exists, even if empty.
	tagProp, ok := props.Get(notion.PropTag)
	if !ok {
		tagProp, ok = props.Get(notion.PropTags)
	}
	if ok {
		f.tags = notion.Names(tagProp.MultiSelect)
	}

	if prop, ok := props.Get(notion.PropCategory); ok && prop.Select != nil && prop.Select.Name != "" {
		name := prop.Select.Name
		f.category = &name
	}

	if prop, ok := props.Get(notion.PropCoverImage); ok && len(prop.Files) > 0 {
		if u := prop.Files[0].URL(); u != "" {
			f.coverImage = &u
		}
	}

	if prop, ok := props.Get(notion.PropContent); ok {
		f.content = notion.JoinPlainText(prop.RichText, ContentSeparator)
	}

	return f
}

// ToListItem maps a page to its list view.
func ToListItem(page notion.Page) ListItem {
	f := extract(page)
	return ListItem{
		ID:         page.ID,
		Slug:       f.slug,
		Title:      f.title,
		Tags:       f.tags,
		Category:   f.category,
		CoverImage: f.coverImage,
		Preview:    Truncate(f.content, PreviewLength),
		LastEdited: page.LastEditedTime,
	}
}

// ToListItems maps pages in order. The result is never nil.
func ToListItems(pages []notion.Page) []ListItem {
	items := make([]ListItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, ToListItem(p))
	}
	return items
}

// ToDetail maps a page to its detail view.
func ToDetail(page notion.Page) Detail {
	f := extract(page)
	return Detail{
		ID:         page.ID,
		Slug:       f.slug,
		Title:      f.title,
		Tags:       f.tags,
		Category:   f.category,
		CoverImage: f.coverImage,
		Content:    f.content,
		LastEdited: page.LastEditedTime,
	}
}

// Truncate returns at most n characters of s without splitting a
// multi-byte character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
