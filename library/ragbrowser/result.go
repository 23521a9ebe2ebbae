package ragbrowser

import (
	"encoding/json"
)

// Metadata describes the crawled page.
type Metadata struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// SearchResultInfo is the search engine hit that led to the page.
type SearchResultInfo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ResultType  string `json:"resultType,omitempty"`
}

// Result is one item of the Actor result sequence.
//
// The upstream object is kept verbatim, so encoding a decoded Result
// yields exactly what the Actor sent; fields are never fabricated.
type Result struct {
	Metadata     *Metadata         `json:"metadata,omitempty"`
	SearchResult *SearchResultInfo `json:"searchResult,omitempty"`
	Markdown     *string           `json:"markdown,omitempty"`
	Text         *string           `json:"text,omitempty"`
	HTML         *string           `json:"html,omitempty"`

	raw json.RawMessage
}

type resultFields Result

// UnmarshalJSON decodes the known fields and keeps the raw object.
func (r *Result) UnmarshalJSON(data []byte) error {
	var fields resultFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Result(fields)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the original upstream object when there is one.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(resultFields(r))
}

// HasMetadataURL reports whether the crawled page carries a url.
func (r Result) HasMetadataURL() bool {
	return r.Metadata != nil && r.Metadata.URL != ""
}

// URL returns the page url, falling back to the search hit.
func (r Result) URL() string {
	if r.Metadata != nil && r.Metadata.URL != "" {
		return r.Metadata.URL
	}
	if r.SearchResult != nil {
		return r.SearchResult.URL
	}
	return ""
}

// Title returns the page title, falling back to the search hit.
func (r Result) Title() string {
	if r.Metadata != nil && r.Metadata.Title != "" {
		return r.Metadata.Title
	}
	if r.SearchResult != nil {
		return r.SearchResult.Title
	}
	return ""
}

// Description returns the search engine snippet.
func (r Result) Description() string {
	if r.SearchResult != nil {
		return r.SearchResult.Description
	}
	return ""
}

// Content returns the page body in the given format and whether it was present.
func (r Result) Content(format string) (string, bool) {
	var p *string
	switch format {
	case FormatMarkdown:
		p = r.Markdown
	case FormatText:
		p = r.Text
	case FormatHTML:
		p = r.HTML
	}
	if p == nil {
		return "", false
	}
	return *p, true
}
