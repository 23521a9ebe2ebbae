package web

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/ragbrowser"
	"github.com/Laisky/search-rag/library/render"
)

// Service is the search capability behind the HTTP API.
type Service interface {
	Search(ctx context.Context, query string, opts ragbrowser.SearchOptions) ([]ragbrowser.Result, error)
	SearchPerson(ctx context.Context, req person.PersonRequest) (*person.Profile, error)
	InvestigateUsername(ctx context.Context, username string) (*person.UsernameReport, error)
	ScrapeXProfile(ctx context.Context, url string) (*person.XProfile, error)
}

type handlers struct {
	svc Service
}

// requestError marks a failure caused by the client request.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "API is running",
	})
}

func (h *handlers) searchPerson(c *gin.Context) {
	format, err := responseFormat(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req PersonSearchRequest
	if err := bindAndValidate(c, &req, req.Validate); err != nil {
		abortWithError(c, err)
		return
	}

	preq := person.PersonRequest{
		Name:          req.Name,
		Context:       req.Context,
		MaxResults:    person.DefaultMaxResults,
		FocusXAccount: req.FocusXAccount,
	}
	if req.MaxResults != nil {
		preq.MaxResults = *req.MaxResults
	}

	profile, err := h.svc.SearchPerson(c, preq)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, format, profile, func() string { return person.RenderMarkdown(profile) })
}

func (h *handlers) rawSearch(c *gin.Context) {
	format, err := responseFormat(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req RawSearchRequest
	if err := bindAndValidate(c, &req, req.Validate); err != nil {
		abortWithError(c, err)
		return
	}
	opts := req.Options()
	if err := opts.Validate(); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	results, err := h.svc.Search(c, req.Query, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, format, results, func() string {
		return ragbrowser.RenderMarkdown(req.Query, results, opts.OutputFormat)
	})
}

func (h *handlers) usernameSearch(c *gin.Context) {
	format, err := responseFormat(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req UsernameSearchRequest
	if err := bindAndValidate(c, &req, req.Validate); err != nil {
		abortWithError(c, err)
		return
	}

	report, err := h.svc.InvestigateUsername(c, req.Username)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, format, report, func() string { return person.RenderUsernameMarkdown(report) })
}

func (h *handlers) xProfile(c *gin.Context) {
	format, err := responseFormat(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req XProfileRequest
	if err := bindAndValidate(c, &req, req.Validate); err != nil {
		abortWithError(c, err)
		return
	}

	profile, err := h.svc.ScrapeXProfile(c, req.URL)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, format, profile, func() string { return person.RenderXProfileMarkdown(profile) })
}

// bindAndValidate decodes the JSON body into req and runs validate.
// An empty body is treated as an empty object so that validation reports the missing fields.
func bindAndValidate(c *gin.Context, req any, validate func() error) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return badRequest(errors.Wrap(err, "invalid request body"))
	}
	if err := validate(); err != nil {
		return badRequest(err)
	}
	return nil
}

func responseFormat(c *gin.Context) (string, error) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", formatJSON)))
	switch format {
	case formatJSON, formatMarkdown, formatHTML:
		return format, nil
	default:
		return "", badRequest(errors.Errorf("format must be one of 'json', 'markdown', 'html', got %q", format))
	}
}

func respond(c *gin.Context, format string, payload any, markdown func() string) {
	switch format {
	case formatMarkdown:
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown()))
	case formatHTML:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(render.HTML(markdown())))
	default:
		c.JSON(http.StatusOK, payload)
	}
}

// statusOf maps an error to the HTTP status reported to the client.
func statusOf(err error) int {
	var reqErr *requestError
	var statusErr *ragbrowser.StatusError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, person.ErrEmptyName),
		errors.Is(err, person.ErrNotXURL):
		return http.StatusBadRequest
	case errors.Is(err, person.ErrNoContent),
		errors.Is(err, person.ErrNoXAccount):
		return http.StatusNotFound
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	logger := gmw.GetLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.Int("status", status), zap.Error(err))
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
