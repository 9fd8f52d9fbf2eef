package cli

import (
	"strings"
	"testing"

	"github.com/brendan.keane/notion-blog/internal/testutil"
	"github.com/brendan.keane/notion-blog/pkg/openapi"
)

func TestDocsHandler_Render(t *testing.T) {
	logger, _ := testutil.CaptureLogger()
	cmd, out := newCommand(nil)

	if err := NewDocsHandler(logger).Execute(cmd, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"notion-blog", "Parameters", "Responses", "slug"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("docs output missing %q", want)
		}
	}
}

func TestDocsHandler_Raw(t *testing.T) {
	logger, _ := testutil.CaptureLogger()
	cmd, out := newCommand(nil)
	if err := cmd.Flags().Set("raw", "true"); err != nil {
		t.Fatal(err)
	}

	if err := NewDocsHandler(logger).Execute(cmd, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.String() != string(openapi.Raw()) {
		t.Error("raw output should be the embedded document verbatim")
	}
}
