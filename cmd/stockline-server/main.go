// Command stockline-server runs the Stockline assistant API and its
// maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stockline/stockline/internal/config"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "stockline-server",
		Short:        "Stockline distribution assistant server",
		Version:      config.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate("stockline-server {{.Version}}\n")

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a JSON logger at level, falling back to info.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("log_level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, newLogger(cfg.LogLevel), nil
}
