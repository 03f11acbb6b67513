package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/storyreader/pkg/site"
)

type fakeSource map[string]string

func (f fakeSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	body, ok := f[name]
	if !ok {
		return nil, &site.StatusError{Path: name, Status: 404}
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f fakeSource) String() string { return "fake" }

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, path string) (string, error) {
	html, ok := f[path]
	if !ok {
		return "", &site.StatusError{Path: path, Status: 404}
	}
	return html, nil
}

func newService() *Service {
	src := fakeSource{
		"stories.json": `{"stories":[
			{"id":"home","title":"Home"},
			{"id":"ch1","title":"Chapter One"},
			{"id":"ch2","title":"Chapter Two","path":"extra/two.html"}
		]}`,
	}
	fetch := fakeFetcher{
		"stories/home.html": "<p>welcome</p>",
		"stories/ch1.html":  "<h2>Start</h2><p>It <em>begins</em>.</p>",
	}
	return NewService(src, fetch, "")
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("empty result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestListStoriesKeepsOrder(t *testing.T) {
	stories, err := newService().ListStories(context.Background())
	if err != nil {
		t.Fatalf("ListStories: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("expected 3 stories, got %d", len(stories))
	}
	if stories[2].ID != "ch2" || stories[2].Position != 3 || stories[2].Path != "extra/two.html" {
		t.Fatalf("unexpected summary %+v", stories[2])
	}
}

func TestSearchStories(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	got, err := svc.SearchStories(ctx, "CHAPTER", 0)
	if err != nil {
		t.Fatalf("SearchStories: %v", err)
	}
	if len(got) != 2 || got[0].ID != "ch1" {
		t.Fatalf("unexpected matches %+v", got)
	}

	got, _ = svc.SearchStories(ctx, "chapter", 1)
	if len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}

	got, _ = svc.SearchStories(ctx, "", 0)
	if len(got) != 3 {
		t.Fatalf("expected empty query to match all, got %d", len(got))
	}
}

func TestReadStory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	dto, err := svc.ReadStory(ctx, "ch1", FormatMarkdown)
	if err != nil {
		t.Fatalf("ReadStory: %v", err)
	}
	if dto.Prev != "home" || dto.Next != "ch2" {
		t.Fatalf("unexpected neighbours prev=%q next=%q", dto.Prev, dto.Next)
	}
	if !strings.Contains(dto.Body, "## Start") || strings.Contains(dto.Body, "<em>") {
		t.Fatalf("expected markdown body, got %q", dto.Body)
	}

	dto, err = svc.ReadStory(ctx, "home", FormatHTML)
	if err != nil {
		t.Fatalf("ReadStory html: %v", err)
	}
	if dto.Body != "<p>welcome</p>" || dto.Prev != "" {
		t.Fatalf("unexpected html read %+v", dto)
	}

	if _, err := svc.ReadStory(ctx, "nope", FormatHTML); !errors.Is(err, ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
	if _, err := svc.ReadStory(ctx, "ch2", FormatHTML); site.StatusOf(err) != 404 {
		t.Fatalf("expected the fetch status to surface, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Format
		wantErr bool
	}{
		"blank":   {in: "", want: FormatHTML},
		"md":      {in: "md", want: FormatMarkdown},
		"mixed":   {in: " Markdown ", want: FormatMarkdown},
		"html":    {in: "HTML", want: FormatHTML},
		"unknown": {in: "pdf", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tc.in, FormatHTML)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseFormat(%q) = %q, %v", tc.in, got, err)
			}
		})
	}
}

func TestToolHandlers(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		result, err := svc.handleListStories(ctx, mcp.CallToolRequest{})
		if err != nil || result.IsError {
			t.Fatalf("unexpected failure %v %v", err, result.Content)
		}
		var payload struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Count != 3 {
			t.Fatalf("expected count 3, got %d", payload.Count)
		}
	})

	t.Run("search requires query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}
		result, err := svc.handleSearchStories(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatalf("expected a tool error for a missing query")
		}
	})

	t.Run("read", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "home", "format": "html"}
		result, err := svc.handleReadStory(ctx, req)
		if err != nil || result.IsError {
			t.Fatalf("unexpected failure %v %v", err, result.Content)
		}
		var dto StoryDTO
		if err := json.Unmarshal([]byte(resultText(t, result)), &dto); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if dto.ID != "home" || dto.Next != "ch1" || dto.Format != "html" {
			t.Fatalf("unexpected story %+v", dto)
		}
	})

	t.Run("read rejects bad format", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "home", "format": "pdf"}
		result, _ := svc.handleReadStory(ctx, req)
		if !result.IsError {
			t.Fatalf("expected a tool error for an unknown format")
		}
	})
}

func TestEndpointPath(t *testing.T) {
	for in, want := range map[string]string{"": "/mcp", "api": "/api", " /x ": "/x"} {
		if got := (Runner{Path: in}).EndpointPath(); got != want {
			t.Fatalf("EndpointPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunnerServesHTTPUntilCancelled(t *testing.T) {
	urls := make(chan string, 1)
	r := Runner{
		Source:    fakeSource{},
		Fetcher:   fakeFetcher{},
		Addr:      "127.0.0.1:0",
		Path:      "stories",
		Listening: func(url string) { urls <- url },
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	var url string
	select {
	case url = <-urls:
	case err := <-done:
		t.Fatalf("runner stopped early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("runner never reported its endpoint")
	}
	if !strings.HasPrefix(url, "http://127.0.0.1:") || !strings.HasSuffix(url, "/stories") {
		t.Fatalf("unexpected endpoint %q", url)
	}
	resp, err := http.Get(strings.TrimSuffix(url, "/stories") + "/elsewhere")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 off the endpoint, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop with its context")
	}
}

func TestRunnerRejectsUnknownTransport(t *testing.T) {
	r := Runner{Source: fakeSource{}, Fetcher: fakeFetcher{}, Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected an unknown transport to fail")
	}
}
