// Package mcp exposes a story site to Model Context Protocol clients.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/site"
)

// Fetcher returns the extracted story fragment stored at a site path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// Service answers story queries shared by the MCP resources and tools.
type Service struct {
	Source      site.Source
	Fetcher     Fetcher
	CatalogPath string
}

// ErrStoryNotFound is returned for ids the catalog does not list.
var ErrStoryNotFound = errors.New("story not found")

// StorySummary is a catalog row with its position.
type StorySummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

// StoryDTO is a story with its body and neighbours.
type StoryDTO struct {
	StorySummary
	Format string `json:"format"`
	Body   string `json:"body"`
	Prev   string `json:"prev,omitempty"`
	Next   string `json:"next,omitempty"`
}

// Format names a story body rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat maps user input onto a Format, falling back to def when blank.
func ParseFormat(value string, def Format) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return def, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected markdown or html)", value)
	}
}

// NewService builds a service over src.
func NewService(src site.Source, fetcher Fetcher, catalogPath string) *Service {
	if catalogPath == "" {
		catalogPath = catalog.DefaultPath
	}
	return &Service{Source: src, Fetcher: fetcher, CatalogPath: catalogPath}
}

func (s *Service) catalog(ctx context.Context) (*catalog.Catalog, error) {
	if s.Source == nil {
		return nil, errors.New("site is not configured")
	}
	return catalog.Load(ctx, s.Source, s.CatalogPath)
}

func summarize(cat *catalog.Catalog, st catalog.Story) StorySummary {
	return StorySummary{
		ID:       st.ID,
		Title:    st.Title,
		Path:     st.ContentPath(),
		Position: cat.Index(st.ID) + 1,
	}
}

// ListStories returns every story in catalog order.
func (s *Service) ListStories(ctx context.Context) ([]StorySummary, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StorySummary, 0, cat.Len())
	for _, st := range cat.Stories() {
		out = append(out, summarize(cat, st))
	}
	return out, nil
}

// SearchStories returns stories whose title contains query, ignoring case.
// An empty query matches everything.
func (s *Service) SearchStories(ctx context.Context, query string, limit int) ([]StorySummary, error) {
	all, err := s.ListStories(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]StorySummary, 0, len(all))
	for _, st := range all {
		if !strings.Contains(strings.ToLower(st.Title), needle) {
			continue
		}
		out = append(out, st)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ReadStory fetches one story body in the requested format.
func (s *Service) ReadStory(ctx context.Context, id string, format Format) (*StoryDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("story id is required")
	}
	if s.Fetcher == nil {
		return nil, errors.New("fetcher is not configured")
	}
	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	st, ok := cat.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
	}

	html, err := s.Fetcher.Fetch(ctx, st.ContentPath())
	if err != nil {
		return nil, err
	}

	dto := &StoryDTO{StorySummary: summarize(cat, st), Format: string(format), Body: html}
	if format == FormatMarkdown {
		if dto.Body, err = content.Markdown(html); err != nil {
			return nil, err
		}
	}
	if prev, ok := cat.Prev(id); ok {
		dto.Prev = prev.ID
	}
	if next, ok := cat.Next(id); ok {
		dto.Next = next.ID
	}
	return dto, nil
}
