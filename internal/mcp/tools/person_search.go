// Package tools implements the MCP tools backed by the person search service.
package tools

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/search-rag/internal/person"
)

// PersonSearcher runs person searches.
type PersonSearcher interface {
	SearchPerson(ctx context.Context, req person.PersonRequest) (*person.Profile, error)
}

// PersonSearchTool implements the person_search MCP tool.
type PersonSearchTool struct {
	searcher PersonSearcher
	logger   logSDK.Logger
}

// NewPersonSearchTool constructs a PersonSearchTool with the provided dependencies.
func NewPersonSearchTool(searcher PersonSearcher, logger logSDK.Logger) (*PersonSearchTool, error) {
	if searcher == nil {
		return nil, errors.New("person searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &PersonSearchTool{searcher: searcher, logger: logger}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *PersonSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"person_search",
		mcp.WithDescription("Search for information about a person and their social media profiles."),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("Full name of the person to search for."),
		),
		mcp.WithString(
			"context",
			mcp.Description("Additional context to refine the search, such as a profession or company."),
		),
		mcp.WithNumber(
			"max_results",
			mcp.Description("Maximum number of search results to process (default: 3)."),
		),
		mcp.WithBoolean(
			"focus_x_account",
			mcp.Description("Focus the search on finding the person's X/Twitter account."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the person_search tool and returns a markdown report.
func (t *PersonSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return mcp.NewToolResultError("name cannot be empty"), nil
	}

	preq := person.PersonRequest{
		Name:          name,
		Context:       readStringArg(req, "context"),
		MaxResults:    readIntArgWithDefault(req, "max_results", person.DefaultMaxResults),
		FocusXAccount: readBoolArg(req, "focus_x_account"),
	}

	start := time.Now()
	profile, err := t.searcher.SearchPerson(ctx, preq)
	if err != nil {
		t.logger.Error("person_search failed", zap.Error(err), zap.String("name", name))
		return errorResult("Error searching for person: %v", err), nil
	}

	t.logger.Debug("person_search completed",
		zap.String("name", name),
		zap.Int("sources", len(profile.Sources)),
		zap.Duration("duration", time.Since(start)),
	)
	return mcp.NewToolResultText(person.RenderMarkdown(profile)), nil
}
