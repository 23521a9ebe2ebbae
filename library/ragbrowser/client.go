// Package ragbrowser is a client of the Apify RAG Web Browser Actor, which searches
// the web and returns the scraped pages as markdown, text or html.
package ragbrowser

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/search-rag/library/log"
)

const (
	// DefaultEndpoint is the standby url of the Actor.
	DefaultEndpoint = "https://rag-web-browser.apify.actor"

	searchPath         = "/search"
	httpRequestTimeout = 180 * time.Second
	// logBodyLimit caps the number of response bytes logged and echoed in errors.
	logBodyLimit = 4096
	loggerName   = "rag_browser"
)

// ErrMissingToken is returned by NewClient when no credential is supplied.
var ErrMissingToken = errors.New("API token must be provided or set as APIFY_API_TOKEN environment variable")

// StatusError is returned when the Actor answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}

// Cache stores encoded result sequences between identical searches.
type Cache interface {
	Load(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, payload string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Searcher is the search capability consumed by the person and presentation layers.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to reach the Actor.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the Actor base url, primarily for testing.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/")
		if trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithLogger overrides the logger used when the context carries none.
func WithLogger(logger logSDK.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCache enables read-through caching of successful searches.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cache != nil && ttl > 0 {
			c.cache = cache
			c.cacheTTL = ttl
		}
	}
}

// Client issues searches against the Actor.
type Client struct {
	token      string
	endpoint   string
	httpClient *http.Client
	logger     logSDK.Logger
	cache      Cache
	cacheTTL   time.Duration
}

// NewClient constructs a Client authenticated by token.
func NewClient(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		token:    token,
		endpoint: DefaultEndpoint,
		logger:   log.Logger.Named(loggerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.httpClient == nil {
		httpClient, err := gutils.NewHTTPClient(gutils.WithHTTPClientTimeout(httpRequestTimeout))
		if err != nil {
			return nil, errors.Wrap(err, "new http client")
		}
		c.httpClient = httpClient
	}

	return c, nil
}

// Search runs query through the Actor and returns the ranked result sequence.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid search options")
	}

	logger := c.logger
	if ctxLogger := log.FromContext(ctx, nil); ctxLogger != nil {
		logger = ctxLogger.Named(loggerName)
	}

	params := opts.values(query)
	cacheKey := CacheKey(params)
	if results, ok := c.loadCache(ctx, logger, cacheKey); ok {
		return results, nil
	}

	endpoint, err := url.Parse(c.endpoint + searchPath)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid actor endpoint %q", c.endpoint)
	}

	logger.Debug("outgoing http request",
		zap.String("method", http.MethodGet),
		zap.String("url", endpoint.String()),
		zap.String("params", params.Encode()),
	)

	params.Set("token", c.token)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create actor request")
	}
	req.Header.Set("Accept", "application/json")

	startAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send actor request")
	}
	defer gutils.LogErr(resp.Body.Close, logger)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read actor response body")
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncatedBody}
	}

	results, err := decodeResults(body)
	if err != nil {
		return nil, err
	}

	c.storeCache(ctx, logger, cacheKey, body)
	return results, nil
}

// CacheKey derives a stable key from the credential-free query parameters.
func CacheKey(params url.Values) string {
	sum := sha256.Sum256([]byte(params.Encode()))
	return hex.EncodeToString(sum[:])
}

func (c *Client) loadCache(ctx context.Context, logger logSDK.Logger, key string) ([]Result, bool) {
	if c.cache == nil {
		return nil, false
	}

	payload, err := c.cache.Load(ctx, key)
	if err != nil || payload == "" {
		logger.Debug("actor cache miss", zap.String("key", key))
		return nil, false
	}

	results, err := decodeResults([]byte(payload))
	if err != nil {
		logger.Warn("drop corrupted actor cache entry", zap.String("key", key), zap.Error(err))
		if err := c.cache.Delete(ctx, key); err != nil {
			logger.Warn("evict actor cache entry", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	logger.Debug("actor cache hit", zap.String("key", key), zap.Int("results", len(results)))
	return results, true
}

func (c *Client) storeCache(ctx context.Context, logger logSDK.Logger, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Store(ctx, key, string(body), c.cacheTTL); err != nil {
		logger.Warn("store actor cache entry", zap.String("key", key), zap.Error(err))
	}
}

func decodeResults(body []byte) ([]Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []Result{}, nil
	}

	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errors.Wrap(err, "unmarshal actor response")
	}
	return results, nil
}

// truncateForLog limits the payload logged for debugging and reports whether truncation occurred.
func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
