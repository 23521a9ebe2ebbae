package person

import (
	"context"
	"sync"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

type searchCall struct {
	query string
	opts  ragbrowser.SearchOptions
}

// fakeSearcher answers queries from canned tables.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []searchCall
	results map[string][]ragbrowser.Result
	errs    map[string]error
	// fallback is returned for queries without a canned answer
	fallback []ragbrowser.Result
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: map[string][]ragbrowser.Result{},
		errs:    map[string]error{},
	}
}

func (f *fakeSearcher) Search(_ context.Context, query string, opts ragbrowser.SearchOptions) ([]ragbrowser.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, searchCall{query: query, opts: opts})
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if results, ok := f.results[query]; ok {
		return results, nil
	}
	return f.fallback, nil
}

func (f *fakeSearcher) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, c.query)
	}
	return out
}

func page(url, title, markdown string) ragbrowser.Result {
	r := ragbrowser.Result{}
	if url != "" || title != "" {
		r.Metadata = &ragbrowser.Metadata{URL: url, Title: title}
	}
	if markdown != "" {
		r.Markdown = &markdown
	}
	return r
}

func strPtr(s string) *string { return &s }
