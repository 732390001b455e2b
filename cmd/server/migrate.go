package main

import (
	"context"
	"database/sql"

	"faculty_api/internal/platform/database"

	"github.com/urfave/cli/v2"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Subcommands: []*cli.Command{
			migrateSubcommand("up", "Apply all pending migrations", database.MigrateUp),
			migrateSubcommand("down", "Roll back the latest migration", database.MigrateDown),
			migrateSubcommand("status", "Print applied and pending migrations", database.MigrationStatus),
		},
	}
}

func migrateSubcommand(name, usage string, run func(context.Context, *sql.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(appCtx *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Connect(appCtx.Context, cfg.DBConnStr())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := run(appCtx.Context, db); err != nil {
				return err
			}
			logger.Info().Str("command", name).Msg("Migration command finished")
			return nil
		},
	}
}
