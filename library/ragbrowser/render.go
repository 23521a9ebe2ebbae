package ragbrowser

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a result sequence as a readable markdown report.
// The body of each result is taken in the requested format, falling back to the
// search snippet when the page did not carry that format.
func RenderMarkdown(query string, results []Result, format string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for '%s'\n\n", query)

	for i, result := range results {
		n := i + 1
		title := result.Title()
		if title == "" {
			title = fmt.Sprintf("Result %d", n)
		}
		url := result.URL()
		if url == "" {
			url = "No URL available"
		}

		fmt.Fprintf(&b, "## %d. %s\n", n, title)
		fmt.Fprintf(&b, "Source: %s\n\n", url)

		content, ok := result.Content(format)
		switch {
		case ok && format == FormatMarkdown:
			fmt.Fprintf(&b, "%s\n\n", content)
		case ok && format == FormatText:
			fmt.Fprintf(&b, "```\n%s\n```\n\n", content)
		case ok && format == FormatHTML:
			b.WriteString("HTML content available but not displayed in this view.\n\n")
		default:
			description := result.Description()
			if description == "" {
				description = "No description available"
			}
			fmt.Fprintf(&b, "%s\n\n", description)
		}

		b.WriteString("---\n\n")
	}

	if len(results) == 0 {
		b.WriteString("No results found for this query.\n")
	}

	return b.String()
}
