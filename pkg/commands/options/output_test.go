package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/site"
)

func TestHandleError(t *testing.T) {
	plain := &OutputOptions{}
	boom := errors.New("boom")
	if err := plain.HandleError(boom); err != boom {
		t.Fatalf("without --json errors pass through, got %v", err)
	}

	var buf bytes.Buffer
	orig := color.Output
	color.Output = &buf
	defer func() { color.Output = orig }()

	o := &OutputOptions{JSON: true}
	err := fmt.Errorf("load: %w", &site.StatusError{Path: "stories.json", Status: 404})
	if got := o.HandleError(err); got != nil {
		t.Fatalf("expected error to be reported as JSON, got %v", got)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if out["status"] != float64(404) {
		t.Fatalf("expected status 404, got %v", out["status"])
	}
	if o.HandleError(nil) != nil {
		t.Fatalf("nil stays nil")
	}
}
