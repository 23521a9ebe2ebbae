// Package tui provides an interactive terminal front-end for the person searches.
// It uses the Charm Bubble Tea framework for a menu-driven interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewState represents the current view state of the TUI
type ViewState int

const (
	// ViewMain is the main menu view
	ViewMain ViewState = iota
	// ViewInput collects the search terms
	ViewInput
	// ViewRunning is the view when a search is running
	ViewRunning
	// ViewResult shows the report or the failure
	ViewResult
)

// SearchKind selects which search a Request runs.
type SearchKind string

const (
	KindPerson    SearchKind = "person"
	KindFindX     SearchKind = "find-x"
	KindUsername  SearchKind = "username"
	KindXProfile  SearchKind = "x-profile"
	KindRawSearch SearchKind = "raw"
)

// Request is a search submitted from the TUI.
type Request struct {
	Kind    SearchKind
	Query   string
	Context string
}

// Runner executes a search and returns the markdown report.
type Runner func(ctx context.Context, req Request) (string, error)

// Renderer styles a markdown report for the given width.
type Renderer func(md string, width int) (string, error)

// field describes one text input of a search form.
type field struct {
	label       string
	placeholder string
	prompt      string
	required    bool
}

// MenuItem represents a menu item in the TUI
type MenuItem struct {
	title       string
	description string
	kind        SearchKind
	fields      []field
}

// Title returns the menu item title (implements list.Item)
func (m MenuItem) Title() string { return m.title }

// Description returns the menu item description (implements list.Item)
func (m MenuItem) Description() string { return m.description }

// FilterValue returns the filter value (implements list.Item)
func (m MenuItem) FilterValue() string { return m.title }

// CommandResult represents the result of a search
type CommandResult struct {
	Success bool
	Message string
	Details string
}

type searchDoneMsg struct {
	report string
	err    error
}

// Model is the main TUI model following the Bubble Tea architecture
type Model struct {
	ctx      context.Context
	runner   Runner
	renderer Renderer

	state    ViewState
	menuList list.Model

	// form of the selected menu item
	current    MenuItem
	inputs     []textinput.Model
	focusIndex int

	spinner  spinner.Model
	viewport viewport.Model
	result   *CommandResult

	width  int
	height int

	quitting bool
}

type keyMap struct {
	Enter key.Binding
	Back  key.Binding
	Tab   key.Binding
	Quit  key.Binding
	Abort key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	// text inputs swallow "q", only ctrl+c quits there
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func menuItems() []list.Item {
	return []list.Item{
		MenuItem{
			title:       "Person Search",
			description: "Find information and social media profiles of a person",
			kind:        KindPerson,
			fields: []field{
				{label: "Name:", placeholder: "Ada Lovelace", prompt: "> ", required: true},
				{label: "Context:", placeholder: "company, location or profession (optional)", prompt: "> "},
			},
		},
		MenuItem{
			title:       "Find X Account",
			description: "Locate the X/Twitter account of a person and read it",
			kind:        KindFindX,
			fields: []field{
				{label: "Name:", placeholder: "Rob Pike", prompt: "> ", required: true},
			},
		},
		MenuItem{
			title:       "Username Investigation",
			description: "Find out who is behind X usernames",
			kind:        KindUsername,
			fields: []field{
				{label: "Usernames:", placeholder: "@golang, @jack", prompt: "@ ", required: true},
			},
		},
		MenuItem{
			title:       "X Profile",
			description: "Scrape an X profile from its url",
			kind:        KindXProfile,
			fields: []field{
				{label: "Profile URL:", placeholder: "https://x.com/golang", prompt: "> ", required: true},
			},
		},
		MenuItem{
			title:       "Raw Search",
			description: "Run a plain RAG Web Browser search for a query or url",
			kind:        KindRawSearch,
			fields: []field{
				{label: "Query:", placeholder: "golang generics", prompt: "> ", required: true},
			},
		},
	}
}

// NewModel creates a TUI model. runner executes the searches and
// renderer styles their reports, a nil renderer shows plain markdown.
func NewModel(ctx context.Context, runner Runner, renderer Renderer) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	menuList := list.New(menuItems(), menuDelegate(), 0, 0)
	menuList.Title = "search-rag"
	menuList.SetShowStatusBar(false)
	menuList.SetFilteringEnabled(false)
	menuList.Styles.Title = styles.banner

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.spinner

	return Model{
		ctx:      ctx,
		runner:   runner,
		renderer: renderer,
		state:    ViewMain,
		menuList: menuList,
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

func createInputs(fields []field) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.placeholder
		inputs[i].CharLimit = 256
		inputs[i].Width = 50
		inputs[i].Prompt = f.prompt
		inputs[i].PromptStyle = styles.label
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputs
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuList.SetSize(msg.Width-4, msg.Height-6)
		m.viewport.Width = max(msg.Width-8, 0)
		m.viewport.Height = max(msg.Height-10, 0)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case ViewMain:
			return m.handleMainMenu(msg)
		case ViewInput:
			return m.handleInputView(msg)
		case ViewResult:
			return m.handleResultView(msg)
		case ViewRunning:
			if key.Matches(msg, keys.Abort) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.state == ViewRunning {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case searchDoneMsg:
		return m.showResult(msg), nil
	}

	if m.state == ViewMain {
		m.menuList, cmd = m.menuList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Enter):
		if selected, ok := m.menuList.SelectedItem().(MenuItem); ok {
			m.state = ViewInput
			m.current = selected
			m.inputs = createInputs(selected.fields)
			m.focusIndex = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

func (m Model) handleInputView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Abort):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.state = ViewMain
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		for i := range m.inputs {
			if i == m.focusIndex {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.validateInputs() {
			return m.startSearch()
		}
		return m, nil
	}

	if m.focusIndex < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleResultView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		m.state = ViewMain
		m.result = nil
		return m, nil

	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// validateInputs checks that every required input has a value
func (m Model) validateInputs() bool {
	for i, input := range m.inputs {
		if m.current.fields[i].required && strings.TrimSpace(input.Value()) == "" {
			return false
		}
	}
	return true
}

// request builds the search request from the form values.
func (m Model) request() Request {
	req := Request{Kind: m.current.kind}
	if len(m.inputs) > 0 {
		req.Query = strings.TrimSpace(m.inputs[0].Value())
	}
	if len(m.inputs) > 1 {
		req.Context = strings.TrimSpace(m.inputs[1].Value())
	}
	return req
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.state = ViewRunning
	return m, tea.Batch(m.spinner.Tick, runSearch(m.ctx, m.runner, m.request()))
}

func runSearch(ctx context.Context, runner Runner, req Request) tea.Cmd {
	return func() tea.Msg {
		if runner == nil {
			return searchDoneMsg{err: errors.New("no search runner configured")}
		}
		report, err := runner(ctx, req)
		return searchDoneMsg{report: report, err: err}
	}
}

func (m Model) showResult(msg searchDoneMsg) Model {
	m.state = ViewResult
	if msg.err != nil {
		m.result = &CommandResult{
			Success: false,
			Message: fmt.Sprintf("%s failed", m.current.title),
			Details: msg.err.Error(),
		}
		return m
	}

	content := msg.report
	if m.renderer != nil {
		if styled, err := m.renderer(msg.report, m.viewport.Width); err == nil {
			content = styled
		}
	}

	m.result = &CommandResult{
		Success: true,
		Message: m.current.title,
		Details: content,
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	return m
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return styles.query.Render("Goodbye!\n")
	}

	switch m.state {
	case ViewMain:
		return m.renderMainMenu()
	case ViewInput:
		return m.renderInput()
	case ViewRunning:
		return m.renderRunning()
	case ViewResult:
		return m.renderResult()
	default:
		return "Unknown state"
	}
}

func (m Model) renderMainMenu() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.menuList.View(),
		styles.keys.Render("↑/↓ navigate • enter select • q quit"),
	)
}

func (m Model) renderInput() string {
	var sb strings.Builder

	sb.WriteString(styles.banner.Render(m.current.title) + "\n\n")
	for i, input := range m.inputs {
		sb.WriteString(styles.label.Render(m.current.fields[i].label) + "\n")
		sb.WriteString(input.View() + "\n\n")
	}
	sb.WriteString(styles.keys.Render("tab: next field • enter: search • esc: back"))

	return styles.panel.Render(sb.String())
}

func (m Model) renderRunning() string {
	return styles.panel.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.spinner.View()+" Searching...",
			styles.query.Render(m.request().Query),
		),
	)
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No result"
	}

	help := styles.keys.Render("↑/↓ scroll • enter/esc: back to menu • q: quit")
	if !m.result.Success {
		return styles.panel.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				styles.failure.Render(m.result.Message),
				"",
				styles.query.Render(m.result.Details),
				"",
				help,
			),
		)
	}

	body := m.result.Details
	if m.viewport.Height > 0 {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.banner.Render(m.result.Message),
		body,
		help,
	)
}
