package person

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a profile as a readable report.
func RenderMarkdown(profile *Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Information about %s\n\n", profile.PersonName)

	links := profile.SocialLinks
	if links.Any() {
		b.WriteString("## Social Media\n")
		if links.XTwitter != nil {
			fmt.Fprintf(&b, "- X/Twitter: %s\n", *links.XTwitter)
		}
		if links.Instagram != nil {
			fmt.Fprintf(&b, "- Instagram: %s\n", *links.Instagram)
		}
		if links.Facebook != nil {
			fmt.Fprintf(&b, "- Facebook: %s\n", *links.Facebook)
		}
		b.WriteString("\n")
	}

	if len(profile.Sources) > 0 {
		b.WriteString("## Sources\n")
		for i, source := range profile.Sources {
			title := source.Title
			if title == "" {
				title = "Untitled"
			}
			url := source.URL
			if url == "" {
				url = "#"
			}
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, title, url)
		}
		b.WriteString("\n")
	}

	if len(profile.Content) > 0 {
		b.WriteString("## Content\n")
		for i, content := range profile.Content {
			n := i + 1
			ref := ""
			if n <= len(profile.Sources) {
				ref = fmt.Sprintf(" (Source: %d)", n)
			}
			fmt.Fprintf(&b, "### Content %d%s\n\n%s\n\n", n, ref, content)
		}
	}

	return b.String()
}

// RenderUsernameMarkdown formats a username investigation as a readable report.
func RenderUsernameMarkdown(report *UsernameReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Information about @%s\n\n", report.Username)

	b.WriteString("## Potential real names\n")
	if len(report.PotentialNames) == 0 {
		b.WriteString("No potential real names found.\n")
	}
	for _, name := range report.PotentialNames {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\n")

	b.WriteString("## Information\n")
	if len(report.PotentialInfo) == 0 {
		b.WriteString("No detailed information found.\n\n")
	}
	for i, info := range report.PotentialInfo {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, info)
	}

	if len(report.RelatedLinks) > 0 {
		b.WriteString("## Related links\n")
		for _, link := range report.RelatedLinks {
			fmt.Fprintf(&b, "- %s\n", link)
		}
	}

	return b.String()
}

// RenderXProfileMarkdown formats a parsed X profile as a readable report.
func RenderXProfileMarkdown(profile *XProfile) string {
	orNone := func(v *string) string {
		if v == nil {
			return "Not found"
		}
		return *v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# X profile @%s\n\n", profile.Username)
	fmt.Fprintf(&b, "- Display name: %s\n", orNone(profile.DisplayName))
	fmt.Fprintf(&b, "- Bio: %s\n", orNone(profile.Bio))
	fmt.Fprintf(&b, "- Followers: %s\n", orNone(profile.FollowersCount))
	fmt.Fprintf(&b, "- Following: %s\n\n", orNone(profile.FollowingCount))

	if len(profile.Tweets) > 0 {
		b.WriteString("## Recent posts\n")
		for i, tweet := range profile.Tweets {
			fmt.Fprintf(&b, "%d. %s\n", i+1, tweet)
		}
	}

	return b.String()
}
