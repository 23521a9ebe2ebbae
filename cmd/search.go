package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/log"
	"github.com/Laisky/search-rag/library/ragbrowser"
	"github.com/Laisky/search-rag/library/render"
)

// output flags shared by every search command
const (
	flagJSON  = "json"
	flagPlain = "plain"
	flagWidth = "width"
)

var personCMD = &cobra.Command{
	Use:   "person <name>",
	Short: "search a person and extract social profiles",
	Example: `  search-rag person "Ada Lovelace" --context mathematician
  search-rag person "Jane Doe" --focus-x --json`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		searchContext, _ := flags.GetString("context")
		maxResults, _ := flags.GetInt("max-results")
		focusX, _ := flags.GetBool("focus-x")

		return withService(cmd, func(ctx context.Context, svc *person.Service) (any, string, error) {
			profile, err := svc.SearchPerson(ctx, person.PersonRequest{
				Name:          args[0],
				Context:       searchContext,
				MaxResults:    maxResults,
				FocusXAccount: focusX,
			})
			if err != nil {
				return nil, "", err
			}
			return profile, person.RenderMarkdown(profile), nil
		})
	},
}

var rawCMD = &cobra.Command{
	Use:   "raw <query|url>",
	Short: "run a raw RAG Web Browser search",
	Example: `  search-rag raw "golang generics" --max-results 5
  search-rag raw https://go.dev --scraping-tool raw-http --output-format text`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rawOptionsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		return withService(cmd, func(ctx context.Context, svc *person.Service) (any, string, error) {
			results, err := svc.Search(ctx, args[0], opts)
			if err != nil {
				return nil, "", err
			}
			return results, ragbrowser.RenderMarkdown(args[0], results, opts.OutputFormat), nil
		})
	},
}

var usernameCMD = &cobra.Command{
	Use:     "username <username>...",
	Short:   "investigate who is behind X usernames",
	Example: `  search-rag username @jack elonmusk`,
	Args:    cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *person.Service) (any, string, error) {
			reports := make([]*person.UsernameReport, 0, len(args))
			docs := make([]string, 0, len(args))
			for _, username := range args {
				report, err := svc.InvestigateUsername(ctx, username)
				if err != nil {
					return nil, "", errors.Wrapf(err, "investigate %q", username)
				}
				reports = append(reports, report)
				docs = append(docs, person.RenderUsernameMarkdown(report))
			}
			return reports, strings.Join(docs, "\n\n---\n\n"), nil
		})
	},
}

var xprofileCMD = &cobra.Command{
	Use:   "xprofile <name|url>",
	Short: "scrape an X profile by url, or find it by person name",
	Example: `  search-rag xprofile https://x.com/golang
  search-rag xprofile "Rob Pike"`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := strings.TrimSpace(args[0])
		return withService(cmd, func(ctx context.Context, svc *person.Service) (any, string, error) {
			var (
				profile *person.XProfile
				err     error
			)
			if _, ok := person.ExtractXUsername(target); ok {
				profile, err = svc.ScrapeXProfile(ctx, target)
			} else {
				profile, err = svc.FindXProfile(ctx, target)
			}
			if err != nil {
				return nil, "", err
			}
			return profile, person.RenderXProfileMarkdown(profile), nil
		})
	},
}

// searchFunc returns the value printed by --json and the markdown document
// printed otherwise.
type searchFunc func(ctx context.Context, svc *person.Service) (any, string, error)

func withService(cmd *cobra.Command, run searchFunc) error {
	ctx := cmd.Context()
	d, err := buildDeps(ctx)
	if err != nil {
		return errors.Wrap(err, "build dependencies")
	}
	defer d.Close()

	value, md, err := run(ctx, d.svc)
	if err != nil {
		log.Logger.Error("search failed", zap.String("cmd", cmd.Name()), zap.Error(err))
		return err
	}

	return writeOutput(cmd.OutOrStdout(), outputModeFromFlags(cmd.Flags()), value, md)
}

type outputMode struct {
	json  bool
	plain bool
	width int
}

func outputModeFromFlags(flags *pflag.FlagSet) outputMode {
	var mode outputMode
	mode.json, _ = flags.GetBool(flagJSON)
	mode.plain, _ = flags.GetBool(flagPlain)
	mode.width, _ = flags.GetInt(flagWidth)
	return mode
}

// writeOutput prints value as indented JSON, md as is, or md styled for the terminal.
func writeOutput(w io.Writer, mode outputMode, value any, md string) error {
	switch {
	case mode.json:
		body, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal output")
		}
		_, err = fmt.Fprintln(w, string(body))
		return errors.WithStack(err)
	case mode.plain:
		_, err := fmt.Fprintln(w, md)
		return errors.WithStack(err)
	}

	term, err := render.NewTerminal(mode.width)
	if err != nil {
		return errors.Wrap(err, "new terminal renderer")
	}
	out, err := term.Render(md)
	if err != nil {
		return errors.Wrap(err, "render output")
	}
	_, err = fmt.Fprintln(w, out)
	return errors.WithStack(err)
}

// rawOptionsFromFlags overlays the raw search flags on the default options.
func rawOptionsFromFlags(flags *pflag.FlagSet) (ragbrowser.SearchOptions, error) {
	opts := ragbrowser.DefaultSearchOptions()
	var err error
	if opts.MaxResults, err = flags.GetInt("max-results"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.ScrapingTool, err = flags.GetString("scraping-tool"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.OutputFormat, err = flags.GetString("output-format"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.RequestTimeoutSecs, err = flags.GetInt("request-timeout-secs"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.DynamicContentWaitSecs, err = flags.GetFloat64("dynamic-content-wait-secs"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.RemoveCookieWarnings, err = flags.GetBool("remove-cookie-warnings"); err != nil {
		return opts, errors.WithStack(err)
	}
	if opts.DebugMode, err = flags.GetBool("debug-mode"); err != nil {
		return opts, errors.WithStack(err)
	}

	if err = opts.Validate(); err != nil {
		return opts, errors.Wrap(err, "invalid search options")
	}
	return opts, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagJSON, false, "print the result as json")
	cmd.Flags().Bool(flagPlain, false, "print the markdown report without terminal styling")
	cmd.Flags().Int(flagWidth, 0, "word wrap width of the styled output")
}

func addRawSearchFlags(flags *pflag.FlagSet) {
	def := ragbrowser.DefaultSearchOptions()
	flags.Int("max-results", def.MaxResults, "number of results, 1-100")
	flags.String("scraping-tool", def.ScrapingTool, "`browser-playwright` or `raw-http`")
	flags.String("output-format", def.OutputFormat, "`markdown`, `text` or `html`")
	flags.Int("request-timeout-secs", def.RequestTimeoutSecs, "actor request timeout in seconds")
	flags.Float64("dynamic-content-wait-secs", def.DynamicContentWaitSecs, "seconds to wait for dynamic content")
	flags.Bool("remove-cookie-warnings", def.RemoveCookieWarnings, "remove cookie consent dialogs")
	flags.Bool("debug-mode", def.DebugMode, "ask the actor for debug information")
}

func init() {
	personCMD.Flags().String("context", "", "extra terms narrowing the search, e.g. a company")
	personCMD.Flags().Int("max-results", person.DefaultMaxResults, "number of pages to scan")
	personCMD.Flags().Bool("focus-x", false, "look for the X/Twitter account specifically")
	addRawSearchFlags(rawCMD.Flags())

	for _, c := range []*cobra.Command{personCMD, rawCMD, usernameCMD, xprofileCMD} {
		addOutputFlags(c)
		rootCMD.AddCommand(c)
	}
}
