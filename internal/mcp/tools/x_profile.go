package tools

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/search-rag/internal/person"
)

// XProfileScraper scrapes X profiles by url or by the owner's name.
type XProfileScraper interface {
	ScrapeXProfile(ctx context.Context, url string) (*person.XProfile, error)
	FindXProfile(ctx context.Context, name string) (*person.XProfile, error)
}

// XProfileTool implements the x_profile MCP tool.
type XProfileTool struct {
	scraper XProfileScraper
	logger  logSDK.Logger
}

// NewXProfileTool constructs an XProfileTool with the provided dependencies.
func NewXProfileTool(scraper XProfileScraper, logger logSDK.Logger) (*XProfileTool, error) {
	if scraper == nil {
		return nil, errors.New("x profile scraper is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &XProfileTool{scraper: scraper, logger: logger}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *XProfileTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"x_profile",
		mcp.WithDescription("Scrape an X/Twitter profile: display name, bio, follower counts and recent posts. "+
			"Pass either the profile url or the person's name."),
		mcp.WithString("url", mcp.Description("Profile url on x.com or twitter.com.")),
		mcp.WithString("name", mcp.Description("Person whose X account should be located first.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the x_profile tool and returns a markdown report.
func (t *XProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := strings.TrimSpace(readStringArg(req, "url"))
	name := strings.TrimSpace(readStringArg(req, "name"))

	var (
		profile *person.XProfile
		err     error
	)
	switch {
	case url != "":
		profile, err = t.scraper.ScrapeXProfile(ctx, url)
	case name != "":
		profile, err = t.scraper.FindXProfile(ctx, name)
	default:
		return mcp.NewToolResultError("either url or name is required"), nil
	}
	if err != nil {
		t.logger.Error("x_profile failed", zap.Error(err), zap.String("url", url), zap.String("name", name))
		return errorResult("Error retrieving X profile: %v", err), nil
	}

	return mcp.NewToolResultText(person.RenderXProfileMarkdown(profile)), nil
}
