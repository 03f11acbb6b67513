package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"list_stories",
		mcp.WithDescription("List every story in reading order."),
	), svc.handleListStories)

	srv.AddTool(mcp.NewTool(
		"search_stories",
		mcp.WithDescription("Find stories whose title contains a query, ignoring case."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for in story titles."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results; 0 means no limit."),
		),
	), svc.handleSearchStories)

	srv.AddTool(mcp.NewTool(
		"read_story",
		mcp.WithDescription("Read a story body along with the ids of its neighbours."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Story identifier from the catalog."),
		),
		mcp.WithString("format",
			mcp.Description("Body format, markdown by default."),
			mcp.Enum(string(FormatMarkdown), string(FormatHTML)),
		),
	), svc.handleReadStory)
}

func (s *Service) handleListStories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stories, err := s.ListStories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"stories": stories,
		"count":   len(stories),
	})
}

func (s *Service) handleSearchStories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	stories, err := s.SearchStories(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"query":   query,
		"stories": stories,
		"count":   len(stories),
	})
}

func (s *Service) handleReadStory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := ParseFormat(request.GetString("format", ""), FormatMarkdown)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dto, err := s.ReadStory(ctx, id, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
