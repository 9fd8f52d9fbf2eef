package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/post"
	"github.com/brendan.keane/notion-blog/internal/testutil"
	"gopkg.in/yaml.v3"
)

func TestRenderList_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderList(&buf, samplePosts(), FormatTable); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SLUG", "TITLE", "hello-world", "Hello World", "Engineering", "go, notion", "Life"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderList_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderList(&buf, []post.ListItem{}, FormatTable); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No posts found") {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	if err := RenderList(&buf, []post.ListItem{}, FormatJSON); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty JSON list = %q, want []", got)
	}
}

func TestRenderList_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderList(&buf, samplePosts(), FormatJSON); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0]["slug"] != "hello-world" {
		t.Errorf("slug = %v", items[0]["slug"])
	}
	if _, ok := items[2]["coverImage"]; !ok {
		t.Error("coverImage key should be present even when null")
	}
}

func TestRenderList_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderList(&buf, samplePosts(), FormatYAML); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}

	var items []post.ListItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(items) != 3 || items[1].Title != "Second Post" {
		t.Errorf("unexpected YAML round trip: %+v", items)
	}
	if items[2].CoverImage != nil {
		t.Errorf("coverImage = %v, want nil", *items[2].CoverImage)
	}
}

func TestRenderDetail(t *testing.T) {
	detail := post.ToDetail(testutil.PublishedPost("p1", "hello-world", "Hello World"))

	tests := []struct {
		format string
		want   []string
	}{
		{FormatDetail, []string{"Hello World", "hello-world", "Engineering", "go, notion", "First paragraph of Hello World.", "Second paragraph."}},
		{FormatTable, []string{"Hello World"}},
		{FormatJSON, []string{`"content": "First paragraph of Hello World.\n\nSecond paragraph."`}},
		{FormatYAML, []string{"slug: hello-world", "category: Engineering"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderDetail(&buf, &detail, tt.format); err != nil {
				t.Fatalf("RenderDetail() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRenderDetail_Defaults(t *testing.T) {
	detail := post.ToDetail(testutil.NewPage("p1").WithoutProperties().Build())

	var buf bytes.Buffer
	if err := RenderDetail(&buf, &detail, FormatDetail); err != nil {
		t.Fatalf("RenderDetail() error = %v", err)
	}
	if !strings.Contains(buf.String(), post.DefaultTitle) {
		t.Errorf("expected default title in %q", buf.String())
	}
	if !strings.Contains(buf.String(), noneValue) {
		t.Errorf("expected placeholder for missing values in %q", buf.String())
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := RenderList(&buf, samplePosts(), "xml")
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("RenderList() error = %v, want validation error", err)
	}

	detail := post.ToDetail(testutil.PublishedPost("p1", "a", "A"))
	err = RenderDetail(&buf, &detail, "xml")
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("RenderDetail() error = %v, want validation error", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", buf.String())
	}
}
