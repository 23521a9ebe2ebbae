package log

import (
	"context"
	"net/http/httptest"
	"testing"

	gmw "github.com/Laisky/gin-middlewares/v7"
	configLog "github.com/Laisky/go-utils/v3/log"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackOutsideRequests(t *testing.T) {
	fallback := Logger.Named("fallback")

	require.Same(t, fallback, FromContext(context.Background(), fallback))
	require.Nil(t, FromContext(context.Background(), nil))
	var nilCtx context.Context
	require.Same(t, fallback, FromContext(nilCtx, fallback))

	var gctx *gin.Context
	require.Same(t, fallback, FromContext(gctx, fallback))
}

func TestFromContextReturnsRequestLogger(t *testing.T) {
	fallback := Logger.Named("fallback")
	reqLogger := Logger.Named("request")

	ctx := gmw.SetLogger(context.Background(), reqLogger)
	require.Same(t, reqLogger, FromContext(ctx, fallback))

	gctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	gctx.Request = httptest.NewRequest("GET", "/", nil)
	require.Same(t, fallback, FromContext(gctx, fallback))

	gmw.SetLogger(gctx, reqLogger)
	require.Same(t, reqLogger, FromContext(gctx, fallback))
}

func TestChangeLevelAppliesToSharedLogger(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, ChangeLevel(logSDK.LevelInfo))
	})

	require.NoError(t, ChangeLevel(logSDK.LevelError))
	require.Equal(t, logSDK.LevelError, Logger.Level())
	require.Equal(t, logSDK.LevelError, logSDK.Shared.Level())
	require.Equal(t, logSDK.LevelError, Logger.Named("person").Level())
	require.Equal(t, configLog.LevelError, configLog.Shared.Level())

	require.Error(t, ChangeLevel("loud"))
}

func TestRedirectToStderrKeepsLevel(t *testing.T) {
	before := Logger
	beforeShared := logSDK.Shared
	beforeConfig := configLog.Shared
	t.Cleanup(func() {
		Logger = before
		logSDK.Shared = beforeShared
		configLog.Shared = beforeConfig
	})

	require.NoError(t, Logger.ChangeLevel(logSDK.LevelWarn))
	t.Cleanup(func() { _ = before.ChangeLevel(logSDK.LevelInfo) })

	require.NoError(t, RedirectToStderr())
	require.NotSame(t, before, Logger)
	require.NotSame(t, beforeShared, logSDK.Shared)
	require.False(t, beforeConfig == configLog.Shared)
	require.Equal(t, logSDK.LevelWarn, Logger.Level())
	require.Equal(t, configLog.LevelWarn, configLog.Shared.Level())
}
