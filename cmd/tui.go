package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Laisky/search-rag/cmd/tui"
	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/ragbrowser"
	"github.com/Laisky/search-rag/library/render"
)

var tuiCMD = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long: `Launch an interactive Terminal User Interface (TUI) for search-rag.

The TUI offers every search of the command line in a menu:
  • Person search with optional context
  • Finding and reading the X account of a person
  • Username investigation
  • Raw RAG Web Browser searches

Keyboard shortcuts:
  ↑/↓ or j/k  Navigate menu items, scroll reports
  Enter       Select / Search
  Tab         Next input field
  Esc         Go back
  q           Quit`,
	Args: gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCMD.AddCommand(tuiCMD)
}

// runTUI starts the interactive Terminal User Interface and returns any start/run error.
func runTUI(ctx context.Context) error {
	d, err := buildDeps(ctx)
	if err != nil {
		return errors.Wrap(err, "build dependencies")
	}
	defer d.Close()

	model := tui.NewModel(ctx, newTUIRunner(d.svc), renderForTerminal)
	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	_, err = p.Run()
	return errors.WithStack(err)
}

func renderForTerminal(md string, width int) (string, error) {
	term, err := render.NewTerminal(width)
	if err != nil {
		return "", err
	}
	return term.Render(md)
}

// newTUIRunner maps the TUI menu entries onto the person service.
func newTUIRunner(svc *person.Service) tui.Runner {
	return func(ctx context.Context, req tui.Request) (string, error) {
		switch req.Kind {
		case tui.KindPerson:
			profile, err := svc.SearchPerson(ctx, person.PersonRequest{
				Name:    req.Query,
				Context: req.Context,
			})
			if err != nil {
				return "", err
			}
			return person.RenderMarkdown(profile), nil
		case tui.KindFindX:
			profile, err := svc.FindXProfile(ctx, req.Query)
			if err != nil {
				return "", err
			}
			return person.RenderXProfileMarkdown(profile), nil
		case tui.KindXProfile:
			profile, err := svc.ScrapeXProfile(ctx, req.Query)
			if err != nil {
				return "", err
			}
			return person.RenderXProfileMarkdown(profile), nil
		case tui.KindUsername:
			var docs []string
			for _, username := range splitUsernames(req.Query) {
				report, err := svc.InvestigateUsername(ctx, username)
				if err != nil {
					return "", errors.Wrapf(err, "investigate %q", username)
				}
				docs = append(docs, person.RenderUsernameMarkdown(report))
			}
			return strings.Join(docs, "\n\n---\n\n"), nil
		case tui.KindRawSearch:
			opts := ragbrowser.DefaultSearchOptions()
			results, err := svc.Search(ctx, req.Query, opts)
			if err != nil {
				return "", err
			}
			return ragbrowser.RenderMarkdown(req.Query, results, opts.OutputFormat), nil
		default:
			return "", errors.Errorf("unknown search %q", req.Kind)
		}
	}
}

// splitUsernames accepts usernames separated by commas or blanks.
func splitUsernames(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
