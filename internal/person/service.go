package person

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/search-rag/library/log"
	"github.com/Laisky/search-rag/library/ragbrowser"
)

const (
	// DefaultMaxResults is the page size of a person search.
	DefaultMaxResults = 3
	// personWaitSecs gives dynamic pages such as X profiles time to render.
	personWaitSecs = 3.0
	loggerName     = "person"
)

// ErrEmptyName is returned when a person search has no name.
var ErrEmptyName = errors.New("name is required")

// PersonRequest describes a person search.
type PersonRequest struct {
	Name          string
	Context       string
	MaxResults    int
	FocusXAccount bool
}

// BuildQuery composes the search query for a person.
// focusX takes precedence over context.
func BuildQuery(name, context string, focusX bool) string {
	name = strings.TrimSpace(name)
	context = strings.TrimSpace(context)

	switch {
	case focusX:
		return name + " X twitter account @"
	case context != "":
		return name + " " + context
	default:
		return name
	}
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger overrides the fallback logger of the service.
func WithLogger(logger logSDK.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service runs person oriented searches on top of the Actor.
type Service struct {
	searcher  ragbrowser.Searcher
	extractor Extractor
	logger    logSDK.Logger
}

// NewService creates a Service backed by searcher.
func NewService(searcher ragbrowser.Searcher, opts ...ServiceOption) (*Service, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}

	s := &Service{
		searcher: searcher,
		logger:   log.Logger.Named(loggerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search forwards a raw query to the Actor.
func (s *Service) Search(ctx context.Context, query string, opts ragbrowser.SearchOptions) ([]ragbrowser.Result, error) {
	return s.searcher.Search(ctx, query, opts)
}

// SearchPerson searches the web for a person and extracts a Profile.
func (s *Service) SearchPerson(ctx context.Context, req PersonRequest) (*Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	opts := ragbrowser.DefaultSearchOptions()
	opts.ScrapingTool = ragbrowser.ScrapingToolBrowser
	opts.OutputFormat = ragbrowser.FormatMarkdown
	opts.DynamicContentWaitSecs = personWaitSecs
	if req.MaxResults > 0 {
		opts.MaxResults = req.MaxResults
	}

	query := BuildQuery(name, req.Context, req.FocusXAccount)
	logger := s.ctxLogger(ctx)
	logger.Info("search person",
		zap.String("name", name),
		zap.String("query", query),
		zap.Int("max_results", opts.MaxResults))

	results, err := s.searcher.Search(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "search person %q", name)
	}

	profile := NewProfile(name, query)
	s.extractor.Apply(profile, results)

	logger.Info("person search completed",
		zap.Int("sources", len(profile.Sources)),
		zap.Bool("x_account_found", profile.SocialLinks.XTwitter != nil))
	return profile, nil
}

func (s *Service) ctxLogger(ctx context.Context) logSDK.Logger {
	if logger := log.FromContext(ctx, nil); logger != nil {
		return logger.Named(loggerName)
	}
	return s.logger
}
