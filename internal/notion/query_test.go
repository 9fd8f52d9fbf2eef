package notion_test

import (
	"encoding/json"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterJSON(t *testing.T) {
	tests := []struct {
		name   string
		filter notion.Filter
		want   string
	}{
		{
			name:   "published",
			filter: notion.PublishedFilter(),
			want:   `{"property":"Published","checkbox":{"equals":true}}`,
		},
		{
			name:   "category",
			filter: notion.CategoryFilter("Foo"),
			want:   `{"property":"Category","select":{"equals":"Foo"}}`,
		},
		{
			name:   "slug",
			filter: notion.SlugFilter("hello"),
			want:   `{"property":"Slug","rich_text":{"equals":"hello"}}`,
		},
		{
			name:   "single and collapses",
			filter: notion.And(notion.PublishedFilter()),
			want:   `{"property":"Published","checkbox":{"equals":true}}`,
		},
		{
			name:   "and",
			filter: notion.And(notion.PublishedFilter(), notion.SlugFilter("x")),
			want:   `{"and":[{"property":"Published","checkbox":{"equals":true}},{"property":"Slug","rich_text":{"equals":"x"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.filter)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestQueryRequestJSON_OmitsUnset(t *testing.T) {
	filter := notion.PublishedFilter()
	data, err := json.Marshal(notion.QueryRequest{Filter: &filter})
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":{"property":"Published","checkbox":{"equals":true}}}`, string(data))
}
