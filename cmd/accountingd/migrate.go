package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bibbank/bib/internal/infrastructure/config"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			dsn := cfg.DB.Postgres(cfg.ServiceName).DSN()
			if err := pgpkg.RunMigrations(dsn, opts.migrationsDir); err != nil {
				return err
			}
			return reportVersion(cmd, cfg, opts, logger.Info)
		},
	}

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one step unless a count is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			dsn := cfg.DB.Postgres(cfg.ServiceName).DSN()
			if err := pgpkg.RunMigrationsDown(dsn, opts.migrationsDir, steps); err != nil {
				return err
			}
			return reportVersion(cmd, cfg, opts, logger.Info)
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func reportVersion(cmd *cobra.Command, cfg config.Config, opts *rootOptions, log func(string, ...any)) error {
	version, dirty, err := pgpkg.MigrationVersion(cfg.DB.Postgres(cfg.ServiceName).DSN(), opts.migrationsDir)
	if err != nil {
		return err
	}
	log("migrations applied", "version", version, "dirty", dirty)
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
