// Package render turns the markdown reports into HTML pages and terminal output.
package render

import (
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

const defaultWordWrap = 100

// HTML converts a markdown document into an HTML fragment.
// Links open in a new tab.
func HTML(md string) string {
	// reports embed scraped page text, raw HTML in it must not reach the browser
	htmlFlags := html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)
	return string(markdown.ToHTML([]byte(md), nil, renderer))
}

// Terminal renders markdown for a terminal.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal creates a terminal renderer wrapping lines at width.
// Extra options are applied after the defaults.
func NewTerminal(width int, opts ...glamour.TermRendererOption) (*Terminal, error) {
	if width <= 0 {
		width = defaultWordWrap
	}

	all := append([]glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	}, opts...)
	renderer, err := glamour.NewTermRenderer(all...)
	if err != nil {
		return nil, errors.Wrap(err, "new glamour renderer")
	}

	return &Terminal{renderer: renderer}, nil
}

// Render returns the styled document, without surrounding blank lines.
func (t *Terminal) Render(md string) (string, error) {
	out, err := t.renderer.Render(md)
	if err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return strings.Trim(out, "\n"), nil
}
