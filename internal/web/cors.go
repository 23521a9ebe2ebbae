package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsPolicy decides which origins may call the API.
type corsPolicy struct {
	any     bool
	origins map[string]bool
	domains []string
}

func newCORSPolicy(allowed []string) *corsPolicy {
	p := &corsPolicy{origins: map[string]bool{}}
	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
		case entry == "*":
			p.any = true
		case strings.Contains(entry, "://"):
			p.origins[strings.TrimRight(entry, "/")] = true
		default:
			p.domains = append(p.domains, strings.TrimPrefix(entry, "*."))
		}
	}
	return p
}

// allow reports whether origin may call the API. listed is false when only
// the "*" entry admits it, such origins get no credentials.
func (p *corsPolicy) allow(origin string) (ok, listed bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false, false
	}
	if p.origins[strings.ToLower(origin)] {
		return true, true
	}

	host := strings.ToLower(parsed.Hostname())
	for _, domain := range p.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true, true
		}
	}
	return p.any, false
}

func newCORSMiddleware(allowed []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowed)

	return func(ctx *gin.Context) {
		origin := strings.TrimSpace(ctx.Request.Header.Get("Origin"))
		ok, listed := false, false
		if origin != "" {
			ok, listed = policy.allow(origin)
		}

		if ok {
			if listed {
				ctx.Header("Access-Control-Allow-Origin", origin)
				ctx.Header("Access-Control-Allow-Credentials", "true")
			} else {
				ctx.Header("Access-Control-Allow-Origin", "*")
			}
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS, HEAD")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With, Mcp-Session-Id")
			ctx.Header("Access-Control-Max-Age", "86400")
			ctx.Header("Vary", "Origin")

			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		} else if origin != "" && ctx.Request.Method == http.MethodOptions {
			// preflight from a disallowed origin
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
