package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	mcpserver "github.com/Laisky/search-rag/internal/mcp"
	"github.com/Laisky/search-rag/library/log"
)

var mcpCMD = &cobra.Command{
	Use:   "mcp",
	Short: "serve MCP over stdio",
	Long: `Serve the search tools as a Model Context Protocol server on stdin/stdout.

stdout carries protocol frames only, every log line goes to stderr.`,
	Args: gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		// before initialize, the config loader already logs
		if err := log.RedirectToStderr(); err != nil {
			glog.Shared.Panic("redirect logs to stderr", zap.Error(err))
		}
		mustInitialize(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMCPStdio(cmd); err != nil {
			log.Logger.Panic("run mcp", zap.Error(err))
		}
	},
}

func runMCPStdio(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx)
	if err != nil {
		return errors.Wrap(err, "build dependencies")
	}
	defer d.Close()

	return serveMCPStdio(ctx, d.svc, os.Stdin, os.Stdout)
}

func serveMCPStdio(ctx context.Context, svc mcpserver.Service, in io.Reader, out io.Writer) error {
	srv, err := mcpserver.NewServer(svc, log.Logger)
	if err != nil {
		return errors.Wrap(err, "new mcp server")
	}

	return srv.ServeStdio(ctx, in, out)
}

func init() {
	rootCMD.AddCommand(mcpCMD)
}
