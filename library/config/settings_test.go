package config

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
)

func mapGetter(values map[string]any) Getter {
	return func(key string) any {
		return values[key]
	}
}

func mapEnv(values map[string]string) EnvLookup {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadWithMissingToken(t *testing.T) {
	st, err := LoadWith(mapGetter(nil), mapEnv(nil))
	require.Nil(t, st)
	require.True(t, errors.Is(err, ErrMissingToken))
	require.Contains(t, err.Error(), EnvAPIToken)
}

func TestLoadWithDefaults(t *testing.T) {
	st, err := LoadWith(mapGetter(nil), mapEnv(map[string]string{EnvAPIToken: " tok "}))
	require.NoError(t, err)
	require.Equal(t, "tok", st.APIToken)
	require.Equal(t, DefaultBaseURL, st.BaseURL)
	require.Equal(t, net.JoinHostPort("0.0.0.0", DefaultPort), st.ListenAddr)
	require.Equal(t, defaultHTTPTimeout, st.HTTPTimeout)
	require.Nil(t, st.Redis)
	require.Empty(t, st.CORSOrigins)
}

func TestLoadWithOverrides(t *testing.T) {
	st, err := LoadWith(mapGetter(map[string]any{
		"settings.apify.token":             "from-file",
		"settings.apify.base_url":          "http://127.0.0.1:9000/",
		"settings.apify.http_timeout_secs": 30,
		"settings.cache.ttl_secs":          "60",
		"settings.web.cors_origins":        "https://a.example, https://b.example",
		"settings.db.redis.addr":           "localhost:6379",
		"settings.db.redis.db":             2,
	}), mapEnv(map[string]string{EnvPort: "9090"}))
	require.NoError(t, err)
	require.Equal(t, "from-file", st.APIToken)
	require.Equal(t, "http://127.0.0.1:9000", st.BaseURL)
	require.Equal(t, 30*time.Second, st.HTTPTimeout)
	require.Equal(t, time.Minute, st.CacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, st.CORSOrigins)
	require.Equal(t, net.JoinHostPort("0.0.0.0", "9090"), st.ListenAddr)
	require.NotNil(t, st.Redis)
	require.Equal(t, "localhost:6379", st.Redis.Addr)
	require.Equal(t, 2, st.Redis.DB)
}

func TestLoadWithEnvTokenWins(t *testing.T) {
	st, err := LoadWith(mapGetter(map[string]any{
		"settings.apify.token": "from-file",
		"listen":               "127.0.0.1:1234",
	}), mapEnv(map[string]string{EnvAPIToken: "from-env", EnvPort: "9999"}))
	require.NoError(t, err)
	require.Equal(t, "from-env", st.APIToken)
	require.Equal(t, "127.0.0.1:1234", st.ListenAddr)
}

func TestStringSliceValue(t *testing.T) {
	require.Nil(t, StringSliceValue(nil))
	require.Equal(t, []string{"a", "b"}, StringSliceValue([]any{"a", " ", "b"}))
	require.Equal(t, []string{"x"}, StringSliceValue([]string{"x", ""}))
	require.Nil(t, StringSliceValue(42))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SEARCH_RAG_DOTENV_TEST=hello\n"), 0o600))
	t.Setenv("SEARCH_RAG_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("SEARCH_RAG_DOTENV_TEST"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "hello", os.Getenv("SEARCH_RAG_DOTENV_TEST"))
}

func TestLoadFromFileOptional(t *testing.T) {
	require.NoError(t, LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"), true))
	require.Error(t, LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"), false))
}
