package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/search-rag/internal/person"
)

// UsernameInvestigator looks for the person behind an X username.
type UsernameInvestigator interface {
	InvestigateUsername(ctx context.Context, username string) (*person.UsernameReport, error)
}

// UsernameSearchTool implements the username_search MCP tool.
type UsernameSearchTool struct {
	investigator UsernameInvestigator
	logger       logSDK.Logger
}

// NewUsernameSearchTool constructs a UsernameSearchTool with the provided dependencies.
func NewUsernameSearchTool(investigator UsernameInvestigator, logger logSDK.Logger) (*UsernameSearchTool, error) {
	if investigator == nil {
		return nil, errors.New("username investigator is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &UsernameSearchTool{investigator: investigator, logger: logger}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *UsernameSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"username_search",
		mcp.WithDescription("Find who is behind an X/Twitter username: candidate real names, context snippets and related links."),
		mcp.WithString(
			"username",
			mcp.Required(),
			mcp.Description("X/Twitter username, with or without the leading @."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the username_search tool and returns a markdown report.
func (t *UsernameSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	username = person.NormalizeUsername(username)
	if username == "" {
		return mcp.NewToolResultError("username cannot be empty"), nil
	}

	report, err := t.investigator.InvestigateUsername(ctx, username)
	if err != nil {
		t.logger.Error("username_search failed", zap.Error(err), zap.String("username", username))
		return errorResult("Error searching for username: %v", err), nil
	}

	return mcp.NewToolResultText(person.RenderUsernameMarkdown(report)), nil
}
