package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/bibbank/bib/internal/infrastructure/cache"
	"github.com/bibbank/bib/internal/infrastructure/config"
	infraPG "github.com/bibbank/bib/internal/infrastructure/postgres"
	"github.com/bibbank/bib/pkg/observability"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

const defaultMigrationsDir = "internal/infrastructure/postgres/migrations"

type rootOptions struct {
	migrationsDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "accountingd",
		Short:         "Double-entry accounting engine for the bib core-banking platform",
		Long:          "accountingd posts balanced GL journal entries for loan, savings and share transactions, reverses them and enforces office closures.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.migrationsDir, "migrations", defaultMigrationsDir, "Directory holding the SQL migrations")

	cmd.AddCommand(newServeCmd(opts), newMigrateCmd(opts), newSeedCmd())
	return cmd
}

// loadRuntime reads the configuration and builds the process logger.
func loadRuntime() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// repositories groups the Postgres adapters shared by serve and seed.
type repositories struct {
	offices  *infraPG.OfficeRepo
	accounts *infraPG.GLAccountRepo
	mappings *infraPG.MappingRepo
	closures *infraPG.ClosureRepo
	journal  *infraPG.JournalReader
	outbox   *infraPG.OutboxRepo
	store    *infraPG.LedgerStore
	refs     *cache.ReferenceCache
}

func newRepositories(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) repositories {
	r := repositories{
		offices:  infraPG.NewOfficeRepo(pool),
		accounts: infraPG.NewGLAccountRepo(pool),
		mappings: infraPG.NewMappingRepo(pool),
		closures: infraPG.NewClosureRepo(pool),
		journal:  infraPG.NewJournalReader(pool),
		outbox:   infraPG.NewOutboxRepo(pool),
		store:    infraPG.NewLedgerStore(pool, cfg.Retry.Policy(), logger),
	}
	r.refs = cache.New(r.mappings, r.accounts, cfg.MappingCacheTTL)
	return r
}

func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	pool, err := pgpkg.NewPool(ctx, cfg.DB.Postgres(cfg.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}
