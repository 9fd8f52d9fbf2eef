package openapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDocument(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	title, version := doc.Title()
	assert.Equal(t, "notion-blog", title)
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "/.netlify/functions", doc.ServerURL())
	assert.NotEmpty(t, doc.Description())
}

func TestOperations_DescribeFunction(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	ops := doc.Operations()
	require.Len(t, ops, 1)

	op := ops[0]
	assert.Equal(t, "GET", op.Method)
	assert.Equal(t, "/notion-blog", op.Path)

	names := make([]string, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		names = append(names, p.Name)
		assert.Equal(t, "query", p.In)
		assert.Equal(t, "string", p.Type)
		assert.False(t, p.Required)
	}
	assert.Equal(t, []string{"mode", "slug", "category"}, names)

	codes := make([]string, 0, len(op.Responses))
	for _, r := range op.Responses {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"200", "400", "404", "500"}, codes)
	assert.Equal(t, "application/json", op.Responses[0].ContentType)
	assert.Equal(t, "text/plain", op.Responses[1].ContentType)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		wantOps int
	}{
		{
			name:    "empty",
			data:    "",
			wantErr: true,
		},
		{
			name: "minimal",
			data: `openapi: 3.0.3
info:
  title: t
  version: "1"
paths:
  /a:
    parameters:
      - name: id
        in: query
        schema:
          type: string
    post:
      parameters:
        - name: id
          in: query
          required: true
          schema:
            type: integer
      responses:
        default:
          description: anything
    get:
      responses:
        "200":
          description: ok
`,
			wantOps: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ops := doc.Operations()
			require.Len(t, ops, tt.wantOps)
			assert.Equal(t, "GET", ops[0].Method)
			assert.Equal(t, "POST", ops[1].Method)

			// Operation parameters override path parameters
			require.Len(t, ops[1].Parameters, 1)
			assert.True(t, ops[1].Parameters[0].Required)
			assert.Equal(t, "integer", ops[1].Parameters[0].Type)
			assert.Equal(t, "default", ops[1].Responses[0].Code)
		})
	}
}

func TestRender(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	out := Render(doc)
	for _, want := range []string{"notion-blog", "/.netlify/functions/notion-blog", "mode", "slug", "category", "Post not found"} {
		assert.True(t, strings.Contains(out, want), "render output missing %q", want)
	}
}

func TestRaw(t *testing.T) {
	assert.True(t, strings.HasPrefix(string(Raw()), "openapi: 3.0.3"))
}
