package person

import "strings"

// DefaultSimilarityThreshold is the overlap ratio above which two snippets are duplicates.
const DefaultSimilarityThreshold = 0.7

// IsSimilarText reports whether the word overlap of a and b exceeds threshold.
//
// The ratio is |W1 ∩ W2| / min(|W1|, |W2|) over lower-cased, whitespace-split word
// sets. Empty inputs are never similar.
func IsSimilarText(a, b string, threshold float64) bool {
	w1 := wordSet(a)
	w2 := wordSet(b)
	if len(w1) == 0 || len(w2) == 0 {
		return false
	}

	common := 0
	for w := range w1 {
		if _, ok := w2[w]; ok {
			common++
		}
	}

	return float64(common)/float64(min(len(w1), len(w2))) > threshold
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SnippetSet is an ordered list of snippets without near duplicates.
type SnippetSet struct {
	threshold float64
	items     []string
}

// NewSnippetSet creates an empty set using threshold, or the default when threshold <= 0.
func NewSnippetSet(threshold float64) *SnippetSet {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &SnippetSet{threshold: threshold, items: []string{}}
}

// Contains reports whether text is similar to a retained snippet.
func (s *SnippetSet) Contains(text string) bool {
	for _, item := range s.items {
		if IsSimilarText(text, item, s.threshold) {
			return true
		}
	}
	return false
}

// Add keeps text unless it is empty or similar to a retained snippet.
func (s *SnippetSet) Add(text string) bool {
	return s.addAs(text, text)
}

// addAs compares text with the retained snippets but stores stored in its place.
func (s *SnippetSet) addAs(text, stored string) bool {
	if text == "" || s.Contains(text) {
		return false
	}
	s.items = append(s.items, stored)
	return true
}

// Items returns the retained snippets in insertion order.
func (s *SnippetSet) Items() []string {
	return s.items
}
