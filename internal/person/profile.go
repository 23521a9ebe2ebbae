// Package person searches the web for a person and extracts identifying details
// from the scraped pages: social media profiles, candidate names and context snippets.
package person

// Source is a page that contributed to a profile.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SocialLinks holds at most one profile url per tracked platform.
// A nil slot means the platform was not found.
type SocialLinks struct {
	XTwitter  *string `json:"x_twitter"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
}

// Any reports whether any platform slot is filled.
func (l SocialLinks) Any() bool {
	return l.XTwitter != nil || l.Instagram != nil || l.Facebook != nil
}

// Profile is the result of a person search.
type Profile struct {
	Query       string      `json:"query"`
	PersonName  string      `json:"person_name"`
	Sources     []Source    `json:"sources"`
	Content     []string    `json:"content"`
	SocialLinks SocialLinks `json:"social_links"`
}

// NewProfile returns an empty profile for name searched by query.
func NewProfile(name, query string) *Profile {
	return &Profile{
		Query:      query,
		PersonName: name,
		Sources:    []Source{},
		Content:    []string{},
	}
}
