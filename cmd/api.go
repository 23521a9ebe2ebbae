package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	mcpserver "github.com/Laisky/search-rag/internal/mcp"
	"github.com/Laisky/search-rag/internal/web"
	"github.com/Laisky/search-rag/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `HTTP API service with the person search endpoints and the MCP transport on /mcp`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		mustInitialize(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAPI(cmd); err != nil {
			log.Logger.Panic("run api", zap.Error(err))
		}
	},
}

func runAPI(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	d, err := buildDeps(ctx)
	if err != nil {
		return errors.Wrap(err, "build dependencies")
	}
	defer d.Close()

	mcpSrv, err := mcpserver.NewServer(d.svc, log.Logger)
	if err != nil {
		return errors.Wrap(err, "new mcp server")
	}

	router, err := web.NewRouter(d.svc, web.Options{
		CORSOrigins:  d.settings.CORSOrigins,
		MCPHandler:   mcpSrv.Handler(),
		EnableMetric: gconfig.Shared.GetBool("settings.web.metrics"),
	})
	if err != nil {
		return errors.Wrap(err, "new router")
	}

	log.Logger.Info("start api server",
		zap.String("listen", d.settings.ListenAddr),
		zap.Strings("mcp_tools", mcpSrv.AvailableToolNames()))
	return web.RunServer(ctx, d.settings.ListenAddr, router)
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
