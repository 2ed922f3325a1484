package main

import (
	"github.com/spf13/cobra"

	"carreramedico/internal/config"
	"carreramedico/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carrera",
		Short:         "Carrera del Médico registration and attendance API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	lggr, err := logger.Config{
		Level:   cfg.LogLevel,
		Console: cfg.LogFormat == "console",
	}.New()
	if err != nil {
		return nil, nil, err
	}
	return cfg, lggr, nil
}
