package ragbrowser

import (
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Scraping tools accepted by the Actor.
const (
	ScrapingToolBrowser = "browser-playwright"
	ScrapingToolRawHTTP = "raw-http"
)

// Output formats accepted by the Actor.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatHTML     = "html"
)

// MaxResultsLimit is the largest page size the Actor accepts.
const MaxResultsLimit = 100

// SearchOptions tunes a single Actor search.
type SearchOptions struct {
	MaxResults             int     `json:"max_results"`
	ScrapingTool           string  `json:"scraping_tool"`
	OutputFormat           string  `json:"output_format"`
	RequestTimeoutSecs     int     `json:"request_timeout_secs"`
	DynamicContentWaitSecs float64 `json:"dynamic_content_wait_secs"`
	RemoveCookieWarnings   bool    `json:"remove_cookie_warnings"`
	DebugMode              bool    `json:"debug_mode"`
}

// DefaultSearchOptions returns the options used when a caller does not override them.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults:             3,
		ScrapingTool:           ScrapingToolBrowser,
		OutputFormat:           FormatMarkdown,
		RequestTimeoutSecs:     40,
		DynamicContentWaitSecs: 1.0,
		RemoveCookieWarnings:   true,
		DebugMode:              false,
	}
}

// Validate checks the options against the values the Actor understands.
func (o SearchOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.MaxResults, validation.Required, validation.Min(1), validation.Max(MaxResultsLimit)),
		validation.Field(&o.ScrapingTool, validation.Required,
			validation.In(ScrapingToolBrowser, ScrapingToolRawHTTP).
				Error("must be either 'browser-playwright' or 'raw-http'")),
		validation.Field(&o.OutputFormat, validation.Required,
			validation.In(FormatMarkdown, FormatText, FormatHTML).
				Error("must be either 'markdown', 'text', or 'html'")),
		validation.Field(&o.RequestTimeoutSecs, validation.Min(0)),
		validation.Field(&o.DynamicContentWaitSecs, validation.Min(0.0)),
	)
}

// values encodes the options as Actor query parameters, without the credential.
func (o SearchOptions) values(query string) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("maxResults", strconv.Itoa(o.MaxResults))
	params.Set("scrapingTool", o.ScrapingTool)
	params.Set("outputFormat", o.OutputFormat)
	params.Set("requestTimeoutSecs", strconv.Itoa(o.RequestTimeoutSecs))
	params.Set("dynamicContentWaitSecs", strconv.FormatFloat(o.DynamicContentWaitSecs, 'f', -1, 64))
	params.Set("removeCookieWarnings", strconv.FormatBool(o.RemoveCookieWarnings))
	params.Set("debugMode", strconv.FormatBool(o.DebugMode))
	return params
}
