package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background.
var (
	colorBrand = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	colorLink  = lipgloss.AdaptiveColor{Light: "#4338CA", Dark: "#A5B4FC"}
	colorBusy  = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorFail  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorInk   = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#042F2E"}
	colorDim   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorFrame = lipgloss.AdaptiveColor{Light: "#99F6E4", Dark: "#115E59"}
)

// theme holds the styles shared by every view of the model.
type theme struct {
	// banner titles the menu, forms and reports
	banner lipgloss.Style
	// query echoes what is being searched
	query   lipgloss.Style
	keys    lipgloss.Style
	panel   lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
	spinner lipgloss.Style
}

var styles = newTheme()

func newTheme() theme {
	return theme{
		banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(colorBrand).
			Padding(0, 1).
			MarginBottom(1),
		query: lipgloss.NewStyle().
			Foreground(colorLink).
			Italic(true),
		keys: lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorFrame).
			PaddingLeft(2),
		failure: lipgloss.NewStyle().
			Foreground(colorFail).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(colorBrand),
		spinner: lipgloss.NewStyle().
			Foreground(colorBusy),
	}
}

// menuDelegate highlights the selected menu entry in the brand colors.
func menuDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorBrand).
		BorderForeground(colorBrand)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(colorLink)
	return delegate
}
