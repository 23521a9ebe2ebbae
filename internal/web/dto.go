package web

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

// Response formats selected by the format query parameter.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

var requiredRule = validation.Required.Error("is required")

// PersonSearchRequest is the body of POST /search.
type PersonSearchRequest struct {
	Name          string `json:"name"`
	Context       string `json:"context"`
	MaxResults    *int   `json:"max_results"`
	FocusXAccount bool   `json:"focus_x_account"`
}

// Validate checks the request after trimming its text fields.
func (r *PersonSearchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Context = strings.TrimSpace(r.Context)

	return validation.ValidateStruct(r,
		validation.Field(&r.Name, requiredRule),
		validation.Field(&r.MaxResults, validation.NilOrNotEmpty,
			validation.Min(1), validation.Max(ragbrowser.MaxResultsLimit)),
	)
}

// RawSearchRequest is the body of POST /raw-search.
// Omitted options take the Actor defaults.
type RawSearchRequest struct {
	Query                  string   `json:"query"`
	MaxResults             *int     `json:"max_results"`
	ScrapingTool           *string  `json:"scraping_tool"`
	OutputFormat           *string  `json:"output_format"`
	RequestTimeoutSecs     *int     `json:"request_timeout_secs"`
	DynamicContentWaitSecs *float64 `json:"dynamic_content_wait_secs"`
	RemoveCookieWarnings   *bool    `json:"remove_cookie_warnings"`
	DebugMode              *bool    `json:"debug_mode"`
}

// Validate checks the query; the options are checked by SearchOptions.Validate.
func (r *RawSearchRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	return validation.ValidateStruct(r,
		validation.Field(&r.Query, requiredRule),
	)
}

// Options merges the request over the default search options.
func (r *RawSearchRequest) Options() ragbrowser.SearchOptions {
	opts := ragbrowser.DefaultSearchOptions()
	if r.MaxResults != nil {
		opts.MaxResults = *r.MaxResults
	}
	if r.ScrapingTool != nil {
		opts.ScrapingTool = *r.ScrapingTool
	}
	if r.OutputFormat != nil {
		opts.OutputFormat = *r.OutputFormat
	}
	if r.RequestTimeoutSecs != nil {
		opts.RequestTimeoutSecs = *r.RequestTimeoutSecs
	}
	if r.DynamicContentWaitSecs != nil {
		opts.DynamicContentWaitSecs = *r.DynamicContentWaitSecs
	}
	if r.RemoveCookieWarnings != nil {
		opts.RemoveCookieWarnings = *r.RemoveCookieWarnings
	}
	if r.DebugMode != nil {
		opts.DebugMode = *r.DebugMode
	}
	return opts
}

// UsernameSearchRequest is the body of POST /username-search.
type UsernameSearchRequest struct {
	Username string `json:"username"`
}

// Validate strips a leading @ and checks the username.
func (r *UsernameSearchRequest) Validate() error {
	r.Username = strings.TrimPrefix(strings.TrimSpace(r.Username), "@")
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, requiredRule),
	)
}

// XProfileRequest is the body of POST /x-profile.
type XProfileRequest struct {
	URL string `json:"url"`
}

// Validate checks the profile url.
func (r *XProfileRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	return validation.ValidateStruct(r,
		validation.Field(&r.URL, requiredRule),
	)
}
