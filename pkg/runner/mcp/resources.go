package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStoriesResource(srv, svc)
	registerStoryTemplate(srv, svc)
}

func registerStoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"storyreader://stories",
		"Stories",
		mcp.WithResourceDescription("Every story in reading order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		stories, err := svc.ListStories(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"stories": stories,
			"count":   len(stories),
		})
	})
}

func registerStoryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"storyreader://stories/{id}",
		"Story",
		mcp.WithTemplateDescription("A single story rendered as Markdown."),
		mcp.WithTemplateMIMEType("text/markdown"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := argument(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("story id is required")
		}
		dto, err := svc.ReadStory(ctx, id, FormatMarkdown)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     "# " + dto.Title + "\n\n" + dto.Body,
			},
		}, nil
	})
}

// argument unwraps a template variable, which arrives as a string or a
// single element slice depending on the matcher.
func argument(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
