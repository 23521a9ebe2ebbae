package person

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	profile := &Profile{
		Query:      "Ada Lovelace",
		PersonName: "Ada Lovelace",
		Sources: []Source{
			{URL: "https://en.wikipedia.org/wiki/Ada_Lovelace", Title: "Ada Lovelace - Wikipedia"},
			{URL: "", Title: ""},
		},
		Content: []string{"first body", "second body", "third body"},
		SocialLinks: SocialLinks{
			XTwitter: strPtr("https://x.com/ada"),
			Facebook: strPtr("https://facebook.com/ada"),
		},
	}

	out := RenderMarkdown(profile)
	require.Contains(t, out, "# Information about Ada Lovelace\n\n")
	require.Contains(t, out, "## Social Media\n- X/Twitter: https://x.com/ada\n- Facebook: https://facebook.com/ada\n\n")
	require.NotContains(t, out, "Instagram")
	require.Contains(t, out, "1. [Ada Lovelace - Wikipedia](https://en.wikipedia.org/wiki/Ada_Lovelace)\n")
	require.Contains(t, out, "2. [Untitled](#)\n")
	require.Contains(t, out, "### Content 1 (Source: 1)\n\nfirst body\n\n")
	require.Contains(t, out, "### Content 2 (Source: 2)\n\nsecond body\n\n")
	require.Contains(t, out, "### Content 3\n\nthird body\n\n")
}

func TestRenderMarkdownEmptyProfile(t *testing.T) {
	out := RenderMarkdown(NewProfile("Nobody", "Nobody"))
	require.Equal(t, "# Information about Nobody\n\n", out)
}

func TestRenderUsernameMarkdown(t *testing.T) {
	out := RenderUsernameMarkdown(&UsernameReport{
		Username:       "ada_dev",
		PotentialNames: []string{"Ada Lovelace"},
		PotentialInfo:  []string{"wrote the first program"},
		RelatedLinks:   []string{"https://example.com"},
	})
	require.Contains(t, out, "# Information about @ada_dev")
	require.Contains(t, out, "- Ada Lovelace\n")
	require.Contains(t, out, "1. wrote the first program\n")
	require.Contains(t, out, "## Related links\n- https://example.com\n")

	out = RenderUsernameMarkdown(&UsernameReport{Username: "ghost"})
	require.Contains(t, out, "No potential real names found.")
	require.Contains(t, out, "No detailed information found.")
	require.NotContains(t, out, "Related links")
}

func TestRenderXProfileMarkdown(t *testing.T) {
	out := RenderXProfileMarkdown(&XProfile{
		Username:    "ada_dev",
		DisplayName: strPtr("Ada"),
		Tweets:      []string{"hello"},
	})
	require.Contains(t, out, "- Display name: Ada\n")
	require.Contains(t, out, "- Bio: Not found\n")
	require.Contains(t, out, "1. hello\n")
}
