package person

import (
	"context"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

const (
	xProfileWaitSecs    = 5.0
	xProfileTimeoutSecs = 60
	maxProfileTweets    = 5
)

var (
	// ErrNoContent is returned when the Actor scraped nothing for a profile.
	ErrNoContent = errors.New("no content retrieved for profile")
	// ErrNotXURL is returned when a url does not point at an X profile.
	ErrNotXURL = errors.New("url does not contain an X/Twitter username")
	// ErrNoXAccount is returned when a person search found no X account.
	ErrNoXAccount = errors.New("no X/Twitter account found")
)

var (
	xUsernamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`twitter\.com/([a-zA-Z0-9_]+)`),
		regexp.MustCompile(`x\.com/([a-zA-Z0-9_]+)`),
	}
	displayNamePattern = regexp.MustCompile(`# ([^\n]+)`)
	bioPattern         = regexp.MustCompile(`(?i)Bio:?\s*([^\n]+)`)
	followersPattern   = regexp.MustCompile(`(\d+[.,]?\d*[KkMm]?)\s*[Ff]ollowers`)
	followingPattern   = regexp.MustCompile(`(\d+[.,]?\d*[KkMm]?)\s*[Ff]ollowing`)
)

// XProfile is the information parsed from a scraped X profile page.
type XProfile struct {
	Username       string   `json:"username"`
	DisplayName    *string  `json:"display_name"`
	Bio            *string  `json:"bio"`
	FollowersCount *string  `json:"followers_count"`
	FollowingCount *string  `json:"following_count"`
	Tweets         []string `json:"tweets"`
}

// ExtractXUsername returns the handle of an X or Twitter profile url.
func ExtractXUsername(url string) (string, bool) {
	for _, pattern := range xUsernamePatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ParseXProfile extracts profile details of username from a scraped markdown page.
func ParseXProfile(markdown, username string) *XProfile {
	profile := &XProfile{
		Username: username,
		Tweets:   []string{},
	}

	profile.DisplayName = firstGroup(displayNamePattern, markdown)
	profile.Bio = firstGroup(bioPattern, markdown)
	profile.FollowersCount = firstGroup(followersPattern, markdown)
	profile.FollowingCount = firstGroup(followingPattern, markdown)

	tweetPattern := regexp.MustCompile(`@` + regexp.QuoteMeta(username) + `[:\s]+([^\n]+)`)
	for _, m := range tweetPattern.FindAllStringSubmatch(markdown, maxProfileTweets) {
		profile.Tweets = append(profile.Tweets, m[1])
	}

	return profile
}

func firstGroup(pattern *regexp.Regexp, text string) *string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	return &v
}

// ScrapeXProfile scrapes the X profile the url points at.
func (s *Service) ScrapeXProfile(ctx context.Context, url string) (*XProfile, error) {
	username, ok := ExtractXUsername(url)
	if !ok {
		return nil, errors.Wrapf(ErrNotXURL, "parse %q", url)
	}

	opts := ragbrowser.DefaultSearchOptions()
	opts.MaxResults = 1
	opts.ScrapingTool = ragbrowser.ScrapingToolBrowser
	opts.OutputFormat = ragbrowser.FormatMarkdown
	opts.DynamicContentWaitSecs = xProfileWaitSecs
	opts.RequestTimeoutSecs = xProfileTimeoutSecs

	profileURL := "https://twitter.com/" + username
	logger := s.ctxLogger(ctx)
	logger.Info("scrape x profile", zap.String("url", profileURL))

	results, err := s.searcher.Search(ctx, profileURL, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "scrape %q", profileURL)
	}
	if len(results) == 0 {
		return nil, errors.Wrapf(ErrNoContent, "scrape %q", profileURL)
	}

	markdown, _ := results[0].Content(ragbrowser.FormatMarkdown)
	profile := ParseXProfile(markdown, username)
	logger.Debug("x profile parsed",
		zap.String("username", username),
		zap.Int("tweets", len(profile.Tweets)))
	return profile, nil
}

// FindXProfile locates the X account of a person by name and scrapes it.
func (s *Service) FindXProfile(ctx context.Context, name string) (*XProfile, error) {
	profile, err := s.SearchPerson(ctx, PersonRequest{
		Name:          name,
		MaxResults:    DefaultMaxResults,
		FocusXAccount: true,
	})
	if err != nil {
		return nil, err
	}
	if profile.SocialLinks.XTwitter == nil {
		return nil, errors.Wrapf(ErrNoXAccount, "search %q", name)
	}

	return s.ScrapeXProfile(ctx, *profile.SocialLinks.XTwitter)
}
