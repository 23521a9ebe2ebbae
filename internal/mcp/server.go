// Package mcp exposes the person search service as Model Context Protocol tools.
package mcp

import (
	"context"
	"io"
	"net/http"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/search-rag/internal/mcp/tools"
	"github.com/Laisky/search-rag/library/log"
)

const (
	serverName    = "search-rag"
	serverVersion = "1.0.0"
)

// Service is everything the tools need from the person search layer.
type Service interface {
	tools.PersonSearcher
	tools.RawSearcher
	tools.UsernameInvestigator
	tools.XProfileScraper
}

type toolHandler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Server wraps the MCP server state for the stdio and HTTP transports.
type Server struct {
	mcpServer *srv.MCPServer
	handler   http.Handler
	logger    logSDK.Logger
	toolNames []string
}

// NewServer constructs an MCP server with every search tool registered.
func NewServer(svc Service, logger logSDK.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.New("service is required")
	}
	if logger == nil {
		logger = log.Logger
	}
	logger = logger.Named("mcp")

	hooks := newMCPHooks(logger.Named("mcp_hooks"))

	mcpServer := srv.NewMCPServer(
		serverName,
		serverVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use person_search to find information and social media profiles of a person, "+
			"raw_search for arbitrary queries or urls, username_search to find who is behind an X username, "+
			"and x_profile to read an X profile."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	s := &Server{
		mcpServer: mcpServer,
		handler:   srv.NewStreamableHTTPServer(mcpServer),
		logger:    logger,
	}

	personTool, err := tools.NewPersonSearchTool(svc, logger.Named("person_search"))
	if err != nil {
		return nil, errors.Wrap(err, "new person_search tool")
	}
	rawTool, err := tools.NewRawSearchTool(svc, logger.Named("raw_search"))
	if err != nil {
		return nil, errors.Wrap(err, "new raw_search tool")
	}
	usernameTool, err := tools.NewUsernameSearchTool(svc, logger.Named("username_search"))
	if err != nil {
		return nil, errors.Wrap(err, "new username_search tool")
	}
	xTool, err := tools.NewXProfileTool(svc, logger.Named("x_profile"))
	if err != nil {
		return nil, errors.Wrap(err, "new x_profile tool")
	}

	for _, tool := range []toolHandler{personTool, rawTool, usernameTool, xTool} {
		def := tool.Definition()
		mcpServer.AddTool(def, tool.Handle)
		s.toolNames = append(s.toolNames, def.Name)
	}

	return s, nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeStdio reads JSON-RPC frames from in and writes responses to out
// until in is closed or ctx is done. out carries protocol frames only,
// so the logger must not write to it.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving mcp over stdio", zap.Strings("tools", s.toolNames))
	if err := srv.NewStdioServer(s.mcpServer).Listen(ctx, in, out); err != nil {
		return errors.Wrap(err, "serve mcp stdio")
	}
	return nil
}

// AvailableToolNames lists the registered tools in registration order.
func (s *Server) AvailableToolNames() []string {
	return append([]string(nil), s.toolNames...)
}

func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.Any("request", message))
		}
		logger.Debug("mcp request received", fields...)
	})

	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		logger.Info("mcp request succeeded", hookLogFields(ctx, id, method)...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.Any("request", message))
		}
		fields = append(fields, zap.Error(err))
		logger.Error("mcp request failed", fields...)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})

	return hooks
}

func hookLogFields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}
