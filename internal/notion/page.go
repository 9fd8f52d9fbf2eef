package notion

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Property names used by the blog database.
const (
	PropTitle      = "Title"
	PropSlug       = "Slug"
	PropTag        = "Tag"
	PropTags       = "Tags"
	PropCoverImage = "Cover image"
	PropContent    = "Content"
	PropCategory   = "Category"
	PropPublished  = "Published"
)

// Page is one row of the database as returned by the query endpoint.
type Page struct {
	Object         string     `json:"object,omitempty"`
	ID             string     `json:"id"`
	LastEditedTime string     `json:"last_edited_time"`
	Properties     Properties `json:"properties"`
}

// Properties is the typed view over a page's named properties. A nil
// map behaves like an empty property set.
type Properties map[string]Property

// UnmarshalJSON treats a properties value that is not an object as an
// empty property set. A property whose value is null is absent.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = nil
		return nil
	}

	out := make(Properties, len(raw))
	for name, msg := range raw {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		var prop Property
		_ = prop.UnmarshalJSON(msg)
		out[name] = prop
	}
	*p = out
	return nil
}

// Get returns the named property and whether it was present.
func (p Properties) Get(name string) (Property, bool) {
	prop, ok := p[name]
	return prop, ok
}

// RichText is a single formatted text segment.
type RichText struct {
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// SelectOption is a select or multi_select value.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FileObject is one entry of a files property. Hosted files carry File,
// linked files carry External.
type FileObject struct {
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	File     *FileLink `json:"file,omitempty"`
	External *FileLink `json:"external,omitempty"`
}

// FileLink holds a file URL.
type FileLink struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// URL returns the hosted URL, falling back to the external URL.
func (f FileObject) URL() string {
	if f.File != nil && f.File.URL != "" {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// Property holds the value fields this service reads. Only the field
// matching the property's type is normally set.
type Property struct {
	ID          string
	Type        string
	Title       []RichText
	RichText    []RichText
	MultiSelect []SelectOption
	Select      *SelectOption
	Files       []FileObject
	Checkbox    bool
}

// UnmarshalJSON decodes each known field on its own and drops any field
// whose shape does not match, so one odd property never fails the page.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = Property{}
		return nil
	}

	var out Property
	decodeField(raw, "id", &out.ID)
	decodeField(raw, "type", &out.Type)
	decodeField(raw, "title", &out.Title)
	decodeField(raw, "rich_text", &out.RichText)
	decodeField(raw, "multi_select", &out.MultiSelect)
	decodeField(raw, "select", &out.Select)
	decodeField(raw, "files", &out.Files)
	decodeField(raw, "checkbox", &out.Checkbox)

	*p = out
	return nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	msg, ok := raw[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return
	}
	*dst = v
}

// MarshalJSON writes the property back in upstream shape. Used by fixtures.
func (p Property) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if p.ID != "" {
		out["id"] = p.ID
	}
	if p.Type != "" {
		out["type"] = p.Type
	}
	if p.Title != nil {
		out["title"] = p.Title
	}
	if p.RichText != nil {
		out["rich_text"] = p.RichText
	}
	if p.MultiSelect != nil {
		out["multi_select"] = p.MultiSelect
	}
	if p.Select != nil {
		out["select"] = p.Select
	}
	if p.Files != nil {
		out["files"] = p.Files
	}
	if p.Type == "checkbox" {
		out["checkbox"] = p.Checkbox
	}
	return json.Marshal(out)
}

// JoinPlainText concatenates the plain text of segments with sep.
func JoinPlainText(segments []RichText, sep string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.PlainText)
	}
	return strings.Join(parts, sep)
}

// Names returns the option names in order.
func Names(options []SelectOption) []string {
	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	return names
}
