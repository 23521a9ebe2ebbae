package ragbrowser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	var results []Result
	require.NoError(t, json.Unmarshal([]byte(`[
		{"metadata":{"url":"https://a.example","title":"A"},"markdown":"alpha body","text":"alpha text"},
		{"searchResult":{"url":"https://b.example","title":"B","description":"b snippet"}},
		{}
	]`), &results))

	out := RenderMarkdown("golang", results, FormatMarkdown)
	require.Contains(t, out, "# Search Results for 'golang'")
	require.Contains(t, out, "## 1. A\nSource: https://a.example\n\nalpha body")
	require.Contains(t, out, "## 2. B\nSource: https://b.example\n\nb snippet")
	require.Contains(t, out, "## 3. Result 3\nSource: No URL available\n\nNo description available")
	require.NotContains(t, out, "No results found")

	out = RenderMarkdown("golang", results[:1], FormatText)
	require.Contains(t, out, "```\nalpha text\n```")

	out = RenderMarkdown("golang", results[:1], FormatHTML)
	require.Contains(t, out, "No description available")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	out := RenderMarkdown("nothing", nil, FormatMarkdown)
	require.Contains(t, out, "No results found for this query.")
}
