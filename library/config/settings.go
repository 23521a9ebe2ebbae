// Package config resolves the runtime settings of search-rag from the settings file,
// the environment and command line flags.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/search-rag/library/ragbrowser"
)

const (
	// EnvAPIToken is the environment variable carrying the Actor credential.
	EnvAPIToken = "APIFY_API_TOKEN"
	// EnvPort selects the listening port when no listen address is configured.
	EnvPort = "PORT"

	// DefaultBaseURL is the standby endpoint of the RAG Web Browser Actor.
	DefaultBaseURL = ragbrowser.DefaultEndpoint
	// DefaultPort is used when neither --listen nor PORT is set.
	DefaultPort = "8080"

	defaultHTTPTimeout = 180 * time.Second
	defaultCacheTTL    = 10 * time.Minute
)

// ErrMissingToken is returned when no Actor credential could be found.
var ErrMissingToken = ragbrowser.ErrMissingToken

// Settings is the resolved startup configuration.
type Settings struct {
	APIToken    string
	BaseURL     string
	HTTPTimeout time.Duration
	ListenAddr  string
	CORSOrigins []string
	// Redis is nil when the result cache is disabled.
	Redis    *RedisSettings
	CacheTTL time.Duration
}

// RedisSettings configures the optional result cache.
type RedisSettings struct {
	Addr     string
	Password string
	DB       int
}

// Getter reads a raw configuration value by dotted key.
type Getter func(key string) any

// EnvLookup reads an environment variable.
type EnvLookup func(key string) string

// Load resolves Settings from the shared configuration and the process environment.
// It fails with ErrMissingToken when the credential is absent.
func Load() (*Settings, error) {
	return LoadWith(gconfig.Shared.Get, os.Getenv)
}

// LoadWith resolves Settings from explicit sources.
func LoadWith(get Getter, env EnvLookup) (*Settings, error) {
	if get == nil || env == nil {
		return nil, errors.New("config sources are required")
	}

	token := strings.TrimSpace(env(EnvAPIToken))
	if token == "" {
		token = strings.TrimSpace(StringValue(get("settings.apify.token")))
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	st := &Settings{
		APIToken:    token,
		BaseURL:     DefaultBaseURL,
		HTTPTimeout: defaultHTTPTimeout,
		CacheTTL:    defaultCacheTTL,
		CORSOrigins: StringSliceValue(get("settings.web.cors_origins")),
	}

	if v := strings.TrimSpace(StringValue(get("settings.apify.base_url"))); v != "" {
		st.BaseURL = strings.TrimRight(v, "/")
	}
	if secs, ok := IntValue(get("settings.apify.http_timeout_secs")); ok && secs > 0 {
		st.HTTPTimeout = time.Duration(secs) * time.Second
	}
	if secs, ok := IntValue(get("settings.cache.ttl_secs")); ok && secs > 0 {
		st.CacheTTL = time.Duration(secs) * time.Second
	}

	st.ListenAddr = strings.TrimSpace(StringValue(get("listen")))
	if st.ListenAddr == "" {
		port := strings.TrimSpace(env(EnvPort))
		if port == "" {
			port = DefaultPort
		}
		st.ListenAddr = net.JoinHostPort("0.0.0.0", port)
	}

	if addr := strings.TrimSpace(StringValue(get("settings.db.redis.addr"))); addr != "" {
		db, _ := IntValue(get("settings.db.redis.db"))
		st.Redis = &RedisSettings{
			Addr:     addr,
			Password: StringValue(get("settings.db.redis.password")),
			DB:       db,
		}
	}

	return st, nil
}

// StringValue converts a raw configuration value into a string.
func StringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// IntValue converts a raw configuration value into an int.
// The second result is false when the value is absent or not numeric.
func IntValue(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// StringSliceValue accepts a yaml list or a comma separated string.
func StringSliceValue(v any) []string {
	var raw []string
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		raw = val
	case []any:
		for _, item := range val {
			raw = append(raw, StringValue(item))
		}
	case string:
		raw = strings.Split(val, ",")
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
