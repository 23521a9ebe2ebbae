// Package web serves the search API over HTTP.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/search-rag/library/log"
)

const shutdownTimeout = 10 * time.Second

// Options configures the router.
type Options struct {
	// CORSOrigins lists the origins allowed to call the API.
	// An entry is "*", a full origin, or a domain that also admits its subdomains.
	CORSOrigins []string
	// MCPHandler serves the streamable HTTP MCP transport on /mcp when set.
	MCPHandler http.Handler
	// EnableMetric exposes the gin-middlewares metric endpoints.
	EnableMetric bool
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc Service, opt Options) (*gin.Engine, error) {
	if svc == nil {
		return nil, errors.New("service is required")
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(log.Logger.Level().String()),
			gmw.WithLogger(log.Logger.Named("gin")),
		),
		newCORSMiddleware(opt.CORSOrigins),
	)

	if opt.EnableMetric {
		if err := gmw.EnableMetric(server); err != nil {
			return nil, errors.Wrap(err, "enable metric server")
		}
	}

	h := &handlers{svc: svc}
	server.GET("/health", h.health)
	server.HEAD("/health", h.health)
	server.POST("/search", h.searchPerson)
	server.POST("/raw-search", h.rawSearch)
	server.POST("/username-search", h.usernameSearch)
	server.POST("/x-profile", h.xProfile)

	if opt.MCPHandler != nil {
		server.Any("/mcp", gmw.FromStd(opt.MCPHandler.ServeHTTP))
	}

	return server, nil
}

// RunServer serves handler on addr until ctx is done.
func RunServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Logger.Info("listening on http", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server exit")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	})

	return g.Wait()
}
