package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/storyreader/pkg/site"
)

// DefaultPath is where a site publishes its catalog.
const DefaultPath = "stories.json"

// Story is one readable unit listed in the catalog.
type Story struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path,omitempty"`
}

// ContentPath is the site path of the story's document: the explicit
// override when present, stories/<id>.html otherwise.
func (s Story) ContentPath() string {
	if s.Path != "" {
		return s.Path
	}
	return "stories/" + s.ID + ".html"
}

// Catalog is the ordered story list. Order defines prev/next adjacency and
// never changes after load.
type Catalog struct {
	stories []Story
	index   map[string]int
}

// New validates stories and builds a catalog. Ids must be unique and
// non-empty, titles non-empty, and there must be at least one story.
func New(stories []Story) (*Catalog, error) {
	if len(stories) == 0 {
		return nil, errors.New("catalog: no stories")
	}
	c := &Catalog{
		stories: make([]Story, len(stories)),
		index:   make(map[string]int, len(stories)),
	}
	for i, s := range stories {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("catalog: story %d has no id", i)
		}
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("catalog: story %q has no title", s.ID)
		}
		if prev, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate id %q at %d and %d", s.ID, prev, i)
		}
		c.index[s.ID] = i
		c.stories[i] = s
	}
	return c, nil
}

// Len is the number of stories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stories)
}

// Stories returns a copy of the ordered story list.
func (c *Catalog) Stories() []Story {
	if c == nil {
		return nil
	}
	out := make([]Story, len(c.stories))
	copy(out, c.stories)
	return out
}

// Index returns the position of id, or -1.
func (c *Catalog) Index(id string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Lookup finds a story by exact id.
func (c *Catalog) Lookup(id string) (Story, bool) {
	i := c.Index(id)
	if i < 0 {
		return Story{}, false
	}
	return c.stories[i], true
}

// Prev returns the story before id, if any.
func (c *Catalog) Prev(id string) (Story, bool) {
	i := c.Index(id)
	if i <= 0 {
		return Story{}, false
	}
	return c.stories[i-1], true
}

// Next returns the story after id, if any.
func (c *Catalog) Next(id string) (Story, bool) {
	i := c.Index(id)
	if i < 0 || i >= len(c.stories)-1 {
		return Story{}, false
	}
	return c.stories[i+1], true
}

// LoadError is the CatalogLoadError of the reader: the catalog was
// unreachable, answered non-success, could not be parsed, or was empty.
// It is fatal to startup.
type LoadError struct {
	Path   string
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load stories configuration from %s (status %d): %v", e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("failed to load stories configuration from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type document struct {
	Stories []Story `json:"stories"`
}

// Parse decodes a catalog document of the form {"stories": [...]}.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return New(doc.Stories)
}

// Load fetches and parses the catalog at path from src. Every failure is
// returned as a *LoadError.
func Load(ctx context.Context, src site.Source, path string) (*Catalog, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := site.Read(ctx, src, path)
	if err != nil {
		return nil, &LoadError{Path: path, Status: site.StatusOf(err), Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return c, nil
}
