package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"traderdesk/internal/cli"
	"traderdesk/internal/config"
	"traderdesk/internal/logging"
)

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	configDir := os.Getenv("TRADERDESK_CONFIG_DIR")

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	if cfg.Logging.FilePath != "" {
		logCfg.FilePath = cfg.Logging.FilePath
	}
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
