package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"faculty_api/internal/platform/config"
	"faculty_api/internal/platform/logging"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "faculty-api",
		Usage: "User accounts, JWT sessions and the teacher directory",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			userCmd(),
		},
		DefaultCommand: "serve",
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	return cfg, logger, nil
}
