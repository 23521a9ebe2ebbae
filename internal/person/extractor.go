package person

import (
	"regexp"
	"strings"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

// Platform is a tracked social network.
type Platform int

const (
	PlatformX Platform = iota
	PlatformInstagram
	PlatformFacebook
)

func (p Platform) String() string {
	switch p {
	case PlatformX:
		return "x_twitter"
	case PlatformInstagram:
		return "instagram"
	case PlatformFacebook:
		return "facebook"
	default:
		return "unknown"
	}
}

type platformRule struct {
	platform Platform
	// hosts are matched as substrings of a result url
	hosts   []string
	pattern *regexp.Regexp
	build   func(match []string) string
}

// platformRules are evaluated in order; the first url rule that matches claims the url.
var platformRules = []platformRule{
	{
		platform: PlatformX,
		hosts:    []string{"twitter.com/", "x.com/"},
		pattern:  regexp.MustCompile(`https?://(?:www\.)?(twitter\.com|x\.com)/([a-zA-Z0-9_]+)`),
		build:    func(m []string) string { return "https://" + m[1] + "/" + m[2] },
	},
	{
		platform: PlatformInstagram,
		hosts:    []string{"instagram.com/"},
		pattern:  regexp.MustCompile(`https?://(?:www\.)?instagram\.com/([a-zA-Z0-9_\.]+)`),
		build:    func(m []string) string { return "https://instagram.com/" + m[1] },
	},
	{
		platform: PlatformFacebook,
		hosts:    []string{"facebook.com/"},
		pattern:  regexp.MustCompile(`https?://(?:www\.)?facebook\.com/([a-zA-Z0-9\.]+)`),
		build:    func(m []string) string { return "https://facebook.com/" + m[1] },
	},
}

// Extractor folds Actor results into a Profile.
type Extractor struct{}

// Apply appends sources and content of results to profile and fills empty social slots.
//
// Results are visited in upstream order. A result url is tested against the platform
// hosts first, then the markdown body is scanned for every platform still missing.
// A filled slot is never overwritten.
func (Extractor) Apply(profile *Profile, results []ragbrowser.Result) {
	for _, result := range results {
		if result.HasMetadataURL() {
			url := result.Metadata.URL
			profile.Sources = append(profile.Sources, Source{
				URL:   url,
				Title: result.Metadata.Title,
			})

			if platform, ok := MatchURL(url); ok {
				profile.SocialLinks.claim(platform, url)
			}
		}

		if result.Markdown == nil {
			continue
		}
		content := *result.Markdown
		profile.Content = append(profile.Content, content)

		for _, rule := range platformRules {
			if profile.SocialLinks.get(rule.platform) != nil {
				continue
			}
			if found, ok := scan(rule, content); ok {
				profile.SocialLinks.claim(rule.platform, found)
			}
		}
	}
}

// MatchURL returns the platform whose host appears first in the rule order.
func MatchURL(url string) (Platform, bool) {
	for _, rule := range platformRules {
		for _, host := range rule.hosts {
			if strings.Contains(url, host) {
				return rule.platform, true
			}
		}
	}
	return 0, false
}

// FindProfileURL scans text for the first profile url of platform.
func FindProfileURL(platform Platform, text string) (string, bool) {
	for _, rule := range platformRules {
		if rule.platform == platform {
			return scan(rule, text)
		}
	}
	return "", false
}

func scan(rule platformRule, text string) (string, bool) {
	m := rule.pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return rule.build(m), true
}

func (l *SocialLinks) slot(p Platform) **string {
	switch p {
	case PlatformX:
		return &l.XTwitter
	case PlatformInstagram:
		return &l.Instagram
	case PlatformFacebook:
		return &l.Facebook
	default:
		return nil
	}
}

func (l *SocialLinks) get(p Platform) *string {
	if s := l.slot(p); s != nil {
		return *s
	}
	return nil
}

// claim sets the slot of p unless it is already set.
func (l *SocialLinks) claim(p Platform, url string) {
	s := l.slot(p)
	if s == nil || *s != nil {
		return
	}
	*s = &url
}
