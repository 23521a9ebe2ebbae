package config

import (
	"os"
	"path/filepath"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/joho/godotenv"

	"github.com/Laisky/search-rag/library/log"
)

// LoadFromFile merges the yaml settings file at cfgPath into the shared configuration.
// A missing file is tolerated when optional is true, so the service can run from the
// environment alone.
func LoadFromFile(cfgPath string, optional bool) error {
	if cfgPath == "" {
		return nil
	}
	if _, err := os.Stat(cfgPath); err != nil {
		if optional && os.IsNotExist(err) {
			log.Logger.Debug("configuration file not found, skip", zap.String("config", cfgPath))
			return nil
		}
		return errors.Wrapf(err, "stat configuration %q", cfgPath)
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		return errors.Wrapf(err, "load configuration %q", cfgPath)
	}

	log.Logger.Info("load configuration", zap.String("config", cfgPath))
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none given)
// into the process environment. Absent files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(err, "load dotenv")
	}
	return nil
}
