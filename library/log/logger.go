// Package log holds the process-wide logger.
package log

import (
	"context"

	"github.com/Laisky/errors/v2"
	configLog "github.com/Laisky/go-utils/v3/log"
	gutils "github.com/Laisky/go-utils/v6"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
)

const (
	loggerName       = "search-rag"
	sharedLoggerName = "go-utils"
	configLoggerName = "go-config"

	// ctxKeyLogger is where the gin-middlewares logger middleware keeps the request logger.
	ctxKeyLogger gutils.CtxKey = "gmw-logger"
)

// Logger is the root logger of search-rag, every component derives a named child from it.
var Logger logSDK.Logger

func init() {
	var err error
	if Logger, err = logSDK.NewConsoleWithName(loggerName, logSDK.LevelInfo); err != nil {
		logSDK.Shared.Panic("new logger", zap.Error(err))
	}
}

// ChangeLevel sets the level of Logger and of the shared loggers that
// go-config and the gin middlewares log through.
func ChangeLevel(level logSDK.Level) error {
	if err := Logger.ChangeLevel(level); err != nil {
		return errors.Wrapf(err, "change level to %q", level)
	}
	if err := logSDK.Shared.ChangeLevel(level); err != nil {
		return errors.Wrapf(err, "change shared level to %q", level)
	}
	if err := configLog.Shared.ChangeLevel(configLog.Level(level)); err != nil {
		return errors.Wrapf(err, "change go-config level to %q", level)
	}
	return nil
}

// RedirectToStderr rebuilds Logger and the shared loggers on stderr,
// keeping their levels. stdout is left to the MCP stdio transport.
// Loggers derived before the call keep their old output.
func RedirectToStderr() error {
	logger, err := newStderrLogger(loggerName, Logger.Level())
	if err != nil {
		return errors.Wrap(err, "new stderr logger")
	}
	shared, err := newStderrLogger(sharedLoggerName, logSDK.Shared.Level())
	if err != nil {
		return errors.Wrap(err, "new stderr shared logger")
	}
	configLogger, err := configLog.New(
		configLog.WithName(configLoggerName),
		configLog.WithEncoding(configLog.EncodingConsole),
		configLog.WithLevel(configLog.Level(Logger.Level())),
		configLog.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		return errors.Wrap(err, "new stderr go-config logger")
	}

	Logger = logger
	logSDK.Shared = shared
	configLog.Shared = configLogger
	return nil
}

func newStderrLogger(name string, level logSDK.Level) (*logSDK.LoggerT, error) {
	return logSDK.New(
		logSDK.WithName(name),
		logSDK.WithEncoding(logSDK.EncodingConsole),
		logSDK.WithLevel(level),
		logSDK.WithOutputPaths([]string{"stderr"}),
	)
}

// FromContext returns the request logger attached by the gin logger middleware,
// or fallback when ctx does not belong to such a request.
func FromContext(ctx context.Context, fallback logSDK.Logger) logSDK.Logger {
	var v any
	switch c := ctx.(type) {
	case nil:
		return fallback
	case *gin.Context:
		if c == nil {
			return fallback
		}
		v, _ = c.Get(ctxKeyLogger)
	default:
		v = ctx.Value(ctxKeyLogger)
	}

	if logger, ok := v.(logSDK.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
