// Package cmd command line
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/search-rag/library/config"
	"github.com/Laisky/search-rag/library/log"
)

const defaultConfigPath = "settings.yml"

var rootCMD = &cobra.Command{
	Use:   "search-rag",
	Short: "search-rag",
	Long:  `person and social profile search on top of the RAG Web Browser Actor`,
	Args:  gcmd.NoExtraArgs,
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	if err := setupSettings(ctx); err != nil {
		return errors.Wrap(err, "setup settings")
	}
	if err := setupLogger(ctx); err != nil {
		return errors.Wrap(err, "setup logger")
	}
	if err := validateStartupConfig(); err != nil {
		return errors.Wrap(err, "validate startup config")
	}

	return nil
}

func setupSettings(_ context.Context) error {
	// mode
	if gconfig.Shared.GetBool("debug") {
		fmt.Fprintln(os.Stderr, "run in debug mode")
		gconfig.Shared.Set("log-level", "debug")
	}

	if err := config.LoadDotEnv(); err != nil {
		return errors.Wrap(err, "load .env")
	}

	// the default path may be absent, an explicit one must exist
	cfgPath := gconfig.Shared.GetString("config")
	optional := cfgPath == defaultConfigPath
	if err := config.LoadFromFile(cfgPath, optional); err != nil {
		return errors.Wrap(err, "load configuration")
	}

	return nil
}

func setupLogger(_ context.Context) error {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.ChangeLevel(glog.Level(lvl)); err != nil {
		return errors.Wrap(err, "change log level")
	}
	return nil
}

// mustInitialize is shared by the PreRun hooks of every subcommand.
func mustInitialize(cmd *cobra.Command) {
	if err := initialize(cmd.Context(), cmd); err != nil {
		log.Logger.Panic("init", zap.Error(err))
	}
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().String("listen", "", "like `0.0.0.0:8080`, defaults to PORT env or 8080")
	rootCMD.PersistentFlags().StringP("config", "c", defaultConfigPath, "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}
