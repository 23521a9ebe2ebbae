package tools

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

// RawSearcher forwards queries to the Actor.
type RawSearcher interface {
	Search(ctx context.Context, query string, opts ragbrowser.SearchOptions) ([]ragbrowser.Result, error)
}

// RawSearchTool implements the raw_search MCP tool.
type RawSearchTool struct {
	searcher RawSearcher
	logger   logSDK.Logger
}

// NewRawSearchTool constructs a RawSearchTool with the provided dependencies.
func NewRawSearchTool(searcher RawSearcher, logger logSDK.Logger) (*RawSearchTool, error) {
	if searcher == nil {
		return nil, errors.New("raw searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &RawSearchTool{searcher: searcher, logger: logger}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *RawSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"raw_search",
		mcp.WithDescription("Perform a raw web search, or scrape a url, with full control over the Actor parameters."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search query or URL to scrape."),
		),
		mcp.WithNumber(
			"max_results",
			mcp.Description("Maximum number of search results to process (default: 3)."),
		),
		mcp.WithString(
			"scraping_tool",
			mcp.Description("Either 'browser-playwright' or 'raw-http' (default: 'browser-playwright')."),
			mcp.Enum(ragbrowser.ScrapingToolBrowser, ragbrowser.ScrapingToolRawHTTP),
		),
		mcp.WithString(
			"output_format",
			mcp.Description("Format of the extracted content: 'markdown', 'text', or 'html' (default: 'markdown')."),
			mcp.Enum(ragbrowser.FormatMarkdown, ragbrowser.FormatText, ragbrowser.FormatHTML),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the raw_search tool and returns a markdown report.
func (t *RawSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}

	opts := ragbrowser.DefaultSearchOptions()
	opts.MaxResults = readIntArgWithDefault(req, "max_results", opts.MaxResults)
	opts.ScrapingTool = readStringArgWithDefault(req, "scraping_tool", opts.ScrapingTool)
	opts.OutputFormat = readStringArgWithDefault(req, "output_format", opts.OutputFormat)

	switch opts.ScrapingTool {
	case ragbrowser.ScrapingToolBrowser, ragbrowser.ScrapingToolRawHTTP:
	default:
		return errorResult("scraping_tool must be either 'browser-playwright' or 'raw-http'"), nil
	}
	switch opts.OutputFormat {
	case ragbrowser.FormatMarkdown, ragbrowser.FormatText, ragbrowser.FormatHTML:
	default:
		return errorResult("output_format must be either 'markdown', 'text', or 'html'"), nil
	}

	results, err := t.searcher.Search(ctx, query, opts)
	if err != nil {
		t.logger.Error("raw_search failed", zap.Error(err), zap.String("query", query))
		return errorResult("Error performing raw search: %v", err), nil
	}

	t.logger.Debug("raw_search completed", zap.String("query", query), zap.Int("results", len(results)))
	return mcp.NewToolResultText(ragbrowser.RenderMarkdown(query, results, opts.OutputFormat)), nil
}
