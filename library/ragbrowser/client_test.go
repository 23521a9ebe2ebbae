package ragbrowser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {"crawl":{"httpStatusCode":200},
   "metadata":{"url":"https://en.wikipedia.org/wiki/Ada_Lovelace","title":"Ada Lovelace - Wikipedia"},
   "searchResult":{"url":"https://en.wikipedia.org/wiki/Ada_Lovelace","title":"Ada Lovelace","description":"English mathematician"},
   "markdown":"# Ada Lovelace\nAugusta Ada King"},
  {"metadata":{"url":"https://x.com/adalovelace","title":"Ada (@adalovelace) / X"},
   "markdown":"profile"}
]`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", WithEndpoint(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return server, client
}

func TestNewClientRequiresToken(t *testing.T) {
	client, err := NewClient("  ")
	require.Nil(t, client)
	require.True(t, errors.Is(err, ErrMissingToken))
}

func TestSearchSendsParameters(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/search", r.URL.Path)

		q := r.URL.Query()
		require.Equal(t, "test-token", q.Get("token"))
		require.Equal(t, "Ada Lovelace", q.Get("query"))
		require.Equal(t, "3", q.Get("maxResults"))
		require.Equal(t, "browser-playwright", q.Get("scrapingTool"))
		require.Equal(t, "markdown", q.Get("outputFormat"))
		require.Equal(t, "40", q.Get("requestTimeoutSecs"))
		require.Equal(t, "1", q.Get("dynamicContentWaitSecs"))
		require.Equal(t, "true", q.Get("removeCookieWarnings"))
		require.Equal(t, "false", q.Get("debugMode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	})

	results, err := client.Search(context.Background(), "  Ada Lovelace ", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.True(t, results[0].HasMetadataURL())
	require.Equal(t, "https://en.wikipedia.org/wiki/Ada_Lovelace", results[0].URL())
	require.Equal(t, "Ada Lovelace - Wikipedia", results[0].Title())
	require.Equal(t, "English mathematician", results[0].Description())
	md, ok := results[0].Content(FormatMarkdown)
	require.True(t, ok)
	require.Contains(t, md, "Augusta Ada King")

	_, ok = results[0].Content(FormatText)
	require.False(t, ok)
}

func TestSearchHandlesHTTPError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"actor crashed"}`))
	})

	results, err := client.Search(context.Background(), "query", DefaultSearchOptions())
	require.Error(t, err)
	require.Nil(t, results)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.Equal(t, `Error 500: {"error":"actor crashed"}`, err.Error())
}

func TestSearchRejectsBadInputBeforeCalling(t *testing.T) {
	var calls int
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.Search(context.Background(), "   ", DefaultSearchOptions())
	require.ErrorContains(t, err, "query cannot be empty")

	opts := DefaultSearchOptions()
	opts.ScrapingTool = "curl"
	_, err = client.Search(context.Background(), "query", opts)
	require.ErrorContains(t, err, "scraping_tool")

	opts = DefaultSearchOptions()
	opts.OutputFormat = "pdf"
	_, err = client.Search(context.Background(), "query", opts)
	require.ErrorContains(t, err, "output_format")

	require.Zero(t, calls)
}

func TestSearchNullBodyIsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	results, err := client.Search(context.Background(), "query", DefaultSearchOptions())
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestResultMarshalKeepsUpstreamFields(t *testing.T) {
	raw := `{"metadata":{"url":"https://example.com","title":"Example"},"text":"plain body","crawl":{"depth":0}}`

	var result Result
	require.NoError(t, json.Unmarshal([]byte(raw), &result))

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(encoded))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(encoded, &generic))
	require.NotContains(t, generic, "markdown")
	require.Contains(t, generic, "text")
}

func TestResultMarshalWithoutUpstream(t *testing.T) {
	md := "body"
	encoded, err := json.Marshal(Result{Metadata: &Metadata{URL: "u", Title: "t"}, Markdown: &md})
	require.NoError(t, err)
	require.JSONEq(t, `{"metadata":{"url":"u","title":"t"},"markdown":"body"}`, string(encoded))
}

type memoryCache struct {
	mu      sync.Mutex
	items   map[string]string
	ttls    map[string]time.Duration
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (m *memoryCache) Store(_ context.Context, key, payload string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = payload
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	delete(m.ttls, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func TestSearchEvictsCorruptedCacheEntry(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	cache := newMemoryCache()
	key := CacheKey(DefaultSearchOptions().values("ada"))
	cache.items[key] = "{not a result list"

	client, err := NewClient("tok",
		WithEndpoint(server.URL),
		WithHTTPClient(server.Client()),
		WithCache(cache, time.Minute),
	)
	require.NoError(t, err)

	results, err := client.Search(context.Background(), "ada", DefaultSearchOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{key}, cache.deleted)
	require.Equal(t, sampleResponse, cache.items[key])
}

func TestSearchUsesCache(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	cache := newMemoryCache()
	client, err := NewClient("tok",
		WithEndpoint(server.URL),
		WithHTTPClient(server.Client()),
		WithCache(cache, time.Minute),
	)
	require.NoError(t, err)

	first, err := client.Search(context.Background(), "ada", DefaultSearchOptions())
	require.NoError(t, err)
	second, err := client.Search(context.Background(), "ada", DefaultSearchOptions())
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Len(t, second, len(first))
	require.Equal(t, first[1].URL(), second[1].URL())

	key := CacheKey(DefaultSearchOptions().values("ada"))
	require.Equal(t, time.Minute, cache.ttls[key])

	opts := DefaultSearchOptions()
	opts.MaxResults = 5
	_, err = client.Search(context.Background(), "ada", opts)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestSearchDoesNotCacheFailures(t *testing.T) {
	cache := newMemoryCache()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient("tok", WithEndpoint(server.URL), WithHTTPClient(server.Client()), WithCache(cache, time.Minute))
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "ada", DefaultSearchOptions())
	require.Error(t, err)
	require.Empty(t, cache.items)
}
