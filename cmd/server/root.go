package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/pkg/config"
	"github.com/artem13815/jobboard/pkg/logger"
)

const appName = "jobboard"

var (
	// Для флагов.
	cfgFile string
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "jobboard serves the job board HTTP API",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file; environment variables override it")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup загружает конфигурацию и строит общий для всех команд логгер.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	if cmd.Flags().Changed("json") {
		cfg.LogJSON = jsonLog
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
