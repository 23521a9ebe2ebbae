package person

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

const (
	// contextRadius is the number of characters kept on each side of a mention.
	contextRadius = 100
	// minContextLen drops windows too short to carry information.
	minContextLen = 50
	// followUpContentLimit caps each snippet taken from the follow-up person search.
	followUpContentLimit = 500
)

var (
	leadingPartialWord  = regexp.MustCompile(`^\S+\s`)
	trailingPartialWord = regexp.MustCompile(`\s\S+$`)
)

// UsernameReport collects what the web knows about an X username.
type UsernameReport struct {
	Username       string   `json:"username"`
	PotentialNames []string `json:"potential_names"`
	PotentialInfo  []string `json:"potential_info"`
	RelatedLinks   []string `json:"related_links"`
}

// NormalizeUsername trims whitespace and a leading @.
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// IdentityQueries returns the queries used to find who is behind username.
func IdentityQueries(username string) []string {
	return []string{
		fmt.Sprintf("@%s twitter who is this person real name", username),
		fmt.Sprintf("@%s real name person behind twitter account", username),
		fmt.Sprintf("who is @%s on twitter personal information", username),
	}
}

func namePatterns(username string) []*regexp.Regexp {
	u := regexp.QuoteMeta(username)
	return []*regexp.Regexp{
		regexp.MustCompile(`@` + u + ` is ([A-Z][a-z]+ [A-Z][a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+) known as @` + u),
		regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-zA-Z-]+), @` + u),
		regexp.MustCompile(`name is ([A-Z][a-z]+ [A-Z][a-z]+)`),
		regexp.MustCompile(`real name is ([A-Z][a-z]+ [A-Z][a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+) \(@` + u + `\)`),
	}
}

// usernameScanner accumulates findings across the result pages of one investigation.
type usernameScanner struct {
	names    []*regexp.Regexp
	mention  *regexp.Regexp
	report   *UsernameReport
	info     *SnippetSet
	seenName map[string]bool
	seenLink map[string]bool
}

func newUsernameScanner(username string) *usernameScanner {
	return &usernameScanner{
		names:   namePatterns(username),
		mention: regexp.MustCompile(`(?i)@?` + regexp.QuoteMeta(username)),
		report: &UsernameReport{
			Username:       username,
			PotentialNames: []string{},
			RelatedLinks:   []string{},
		},
		info:     NewSnippetSet(DefaultSimilarityThreshold),
		seenName: map[string]bool{},
		seenLink: map[string]bool{},
	}
}

func (s *usernameScanner) scan(result ragbrowser.Result) {
	if result.HasMetadataURL() && !s.seenLink[result.Metadata.URL] {
		s.seenLink[result.Metadata.URL] = true
		s.report.RelatedLinks = append(s.report.RelatedLinks, result.Metadata.URL)
	}

	markdown, _ := result.Content(ragbrowser.FormatMarkdown)
	if markdown == "" {
		return
	}

	for _, pattern := range s.names {
		for _, m := range pattern.FindAllStringSubmatch(markdown, -1) {
			if name := m[1]; name != "" && !s.seenName[name] {
				s.seenName[name] = true
				s.report.PotentialNames = append(s.report.PotentialNames, name)
			}
		}
	}

	for _, loc := range s.mention.FindAllStringIndex(markdown, -1) {
		window := strings.TrimSpace(contextWindow(markdown, loc[0], loc[1], contextRadius))
		if utf8.RuneCountInString(window) <= minContextLen {
			continue
		}
		window = leadingPartialWord.ReplaceAllString(window, "")
		window = trailingPartialWord.ReplaceAllString(window, "")
		s.info.Add(window)
	}
}

// contextWindow returns text[start:end] widened by radius characters on each side.
func contextWindow(text string, start, end, radius int) string {
	for i := 0; i < radius && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	for i := 0; i < radius && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[start:end]
}

// InvestigateUsername looks for the person behind an X username.
//
// The identity queries run concurrently and their results are merged in query
// order. A failed query is logged and skipped; the call fails only when every
// query failed. When a candidate name is found, a person search for the first
// one contributes extra snippets.
func (s *Service) InvestigateUsername(ctx context.Context, username string) (*UsernameReport, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	logger := s.ctxLogger(ctx).With(zap.String("username", username))
	queries := IdentityQueries(username)

	opts := ragbrowser.DefaultSearchOptions()
	opts.MaxResults = 3
	opts.ScrapingTool = ragbrowser.ScrapingToolBrowser
	opts.OutputFormat = ragbrowser.FormatMarkdown

	// queries run one after another, one Actor request at a time
	scanner := newUsernameScanner(username)
	var firstErr error
	failed := 0
	for _, query := range queries {
		results, err := s.searcher.Search(ctx, query, opts)
		if err != nil {
			logger.Warn("identity query failed", zap.String("query", query), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			failed++
			continue
		}
		for _, result := range results {
			scanner.scan(result)
		}
	}
	if failed == len(queries) {
		return nil, errors.Wrapf(firstErr, "investigate username %q", username)
	}

	report := scanner.report
	if len(report.PotentialNames) > 0 {
		name := report.PotentialNames[0]
		logger.Info("search candidate name", zap.String("name", name))

		profile, err := s.SearchPerson(ctx, PersonRequest{
			Name:       name,
			Context:    "related to twitter @" + username,
			MaxResults: DefaultMaxResults,
		})
		if err != nil {
			logger.Warn("candidate name search failed", zap.String("name", name), zap.Error(err))
		} else {
			for _, content := range profile.Content {
				scanner.info.addAs(content, truncateRunes(content, followUpContentLimit))
			}
		}
	}

	report.PotentialInfo = scanner.info.Items()
	logger.Info("username investigation completed",
		zap.Int("names", len(report.PotentialNames)),
		zap.Int("info", len(report.PotentialInfo)),
		zap.Int("links", len(report.RelatedLinks)))
	return report, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
