package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/ragbrowser"
)

func newRawFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("raw", pflag.ContinueOnError)
	addRawSearchFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestRawOptionsFromFlagsDefaults(t *testing.T) {
	opts, err := rawOptionsFromFlags(newRawFlagSet(t))
	require.NoError(t, err)
	require.Equal(t, ragbrowser.DefaultSearchOptions(), opts)
}

func TestRawOptionsFromFlagsOverrides(t *testing.T) {
	opts, err := rawOptionsFromFlags(newRawFlagSet(t,
		"--max-results", "7",
		"--scraping-tool", "raw-http",
		"--output-format", "text",
		"--request-timeout-secs", "15",
		"--dynamic-content-wait-secs", "2.5",
		"--remove-cookie-warnings=false",
		"--debug-mode",
	))
	require.NoError(t, err)
	require.Equal(t, ragbrowser.SearchOptions{
		MaxResults:             7,
		ScrapingTool:           ragbrowser.ScrapingToolRawHTTP,
		OutputFormat:           ragbrowser.FormatText,
		RequestTimeoutSecs:     15,
		DynamicContentWaitSecs: 2.5,
		RemoveCookieWarnings:   false,
		DebugMode:              true,
	}, opts)
}

func TestRawOptionsFromFlagsInvalid(t *testing.T) {
	_, err := rawOptionsFromFlags(newRawFlagSet(t, "--scraping-tool", "curl"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be either 'browser-playwright' or 'raw-http'")

	_, err = rawOptionsFromFlags(newRawFlagSet(t, "--max-results", "101"))
	require.Error(t, err)
}

func TestWriteOutputJSON(t *testing.T) {
	profile := person.NewProfile("Ada Lovelace", "Ada Lovelace")
	var buf bytes.Buffer
	err := writeOutput(&buf, outputMode{json: true}, profile, "ignored")
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"person_name": "Ada Lovelace"`)
	require.Contains(t, buf.String(), `"x_twitter": null`)
	require.NotContains(t, buf.String(), "ignored")
}

func TestWriteOutputPlain(t *testing.T) {
	var buf bytes.Buffer
	err := writeOutput(&buf, outputMode{plain: true}, nil, "# Title\n\nbody")
	require.NoError(t, err)
	require.Equal(t, "# Title\n\nbody\n", buf.String())
}

func TestWriteOutputStyled(t *testing.T) {
	var buf bytes.Buffer
	err := writeOutput(&buf, outputMode{width: 60}, nil, "# Title\n\nsome body text")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "some body text")
	require.False(t, strings.HasPrefix(buf.String(), "\n"))
}

func TestSearchCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCMD.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"api", "mcp", "person", "raw", "username", "xprofile", "tui"} {
		require.True(t, names[want], want)
	}

	for _, c := range []string{"person", "raw", "username", "xprofile"} {
		sub, _, err := rootCMD.Find([]string{c})
		require.NoError(t, err)
		require.NotNil(t, sub.Flags().Lookup(flagJSON), c)
	}
}

func TestSplitUsernames(t *testing.T) {
	require.Equal(t, []string{"@golang", "jack", "rob"}, splitUsernames(" @golang, jack\trob ,"))
	require.Empty(t, splitUsernames(" , "))
}
