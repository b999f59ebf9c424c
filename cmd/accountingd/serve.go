package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibbank/bib/internal/application/usecase"
	"github.com/bibbank/bib/internal/domain/service"
	"github.com/bibbank/bib/internal/infrastructure/config"
	infraKafka "github.com/bibbank/bib/internal/infrastructure/kafka"
	"github.com/bibbank/bib/internal/infrastructure/telemetry"
	grpcPresentation "github.com/bibbank/bib/internal/presentation/grpc"
	"github.com/bibbank/bib/internal/presentation/rest"
	"github.com/bibbank/bib/pkg/auth"
	kafkapkg "github.com/bibbank/bib/pkg/kafka"
	"github.com/bibbank/bib/pkg/observability"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		skipMigrations bool
		reflection     bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP servers, the outbox relay and the posting command consumer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger, serveOptions{
				migrationsDir:  opts.migrationsDir,
				skipMigrations: skipMigrations,
				reflection:     reflection,
			})
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply migrations on startup")
	cmd.Flags().BoolVar(&reflection, "grpc-reflection", false, "Register the gRPC reflection service")
	return cmd
}

type serveOptions struct {
	migrationsDir  string
	skipMigrations bool
	reflection     bool
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, opts serveOptions) error {
	logger.Info("starting accountingd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !opts.skipMigrations {
		if err := pgpkg.RunMigrations(cfg.DB.Postgres(cfg.ServiceName).DSN(), opts.migrationsDir); err != nil {
			logger.Warn("migration warning", "error", err)
		}
	}

	metrics, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() { _ = metrics.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	ledgerMetrics, err := telemetry.NewLedgerMetrics(metrics.Provider)
	if err != nil {
		return err
	}

	// Wire dependencies (DI via constructors)
	repos := newRepositories(pool, cfg, logger)
	guard := service.NewClosureGuard()
	validator := service.NewPostingValidator()
	builder := service.NewEntryBuilder(service.NewRuleResolver(repos.refs, repos.refs))

	postUC := usecase.NewPostTransaction(repos.store, builder, guard, validator, ledgerMetrics, logger)
	queries := usecase.NewJournalQueries(repos.journal)
	useCases := grpcPresentation.UseCases{
		PostTransaction:      postUC,
		ReverseTransaction:   usecase.NewReverseTransaction(repos.store, service.NewReversalEngine(guard, validator), ledgerMetrics, logger),
		CreateClosure:        usecase.NewCreateClosure(repos.store, logger),
		GetLatestClosure:     usecase.NewGetLatestClosure(repos.offices, repos.closures, guard),
		ListClosures:         usecase.NewListClosures(repos.closures),
		CreateGLAccount:      usecase.NewCreateGLAccount(repos.accounts),
		GetGLAccount:         usecase.NewGetGLAccount(repos.accounts),
		DisableGLAccount:     usecase.NewDisableGLAccount(repos.accounts, repos.refs),
		EnableGLAccount:      usecase.NewEnableGLAccount(repos.accounts, repos.refs),
		ListGLAccounts:       usecase.NewListGLAccounts(repos.accounts),
		CreateAccountMapping: usecase.NewCreateAccountMapping(repos.mappings, repos.accounts, repos.refs),
		CreateOffice:         usecase.NewCreateOffice(repos.offices),
		Queries:              queries,
	}

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	grpcServer, err := grpcPresentation.NewServer(grpcPresentation.NewAccountingHandler(useCases), grpcPresentation.ServerConfig{
		Port:         cfg.GRPCPort,
		CertFile:     cfg.TLS.CertFile,
		KeyFile:      cfg.TLS.KeyFile,
		ClientCAFile: cfg.TLS.ClientCAFile,
		Reflection:   opts.reflection,
	}, logger, jwtSvc)
	if err != nil {
		return err
	}

	// HTTP server (health checks, metrics, journal queries)
	router := rest.NewRouter(rest.RouterConfig{
		Health:  rest.NewHealthHandler(cfg.ServiceName, func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) }, logger),
		Journal: rest.NewJournalHandler(queries),
		Metrics: metrics.Handler,
		JWT:     jwtSvc,
		Logger:  logger,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	kafkaCfg := kafkapkg.Config{Brokers: cfg.Kafka.Brokers, ConsumerGroup: cfg.Kafka.ConsumerGroup}
	producer, err := kafkapkg.NewProducer(kafkaCfg)
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort close
	relay := infraKafka.NewOutboxRelay(repos.outbox, infraKafka.NewOutboxPublisher(producer, cfg.Kafka.Topic),
		cfg.Outbox.PollInterval, cfg.Outbox.BatchSize, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 4)

	go func() {
		errCh <- grpcServer.Start(ctx)
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("outbox relay: %w", err)
		}
	}()

	if cfg.Kafka.CommandTopic != "" {
		consumer, err := kafkapkg.NewConsumer(kafkaCfg, cfg.Kafka.CommandTopic,
			infraKafka.NewPostingCommandHandler(postUC, logger).Handle, logger)
		if err != nil {
			return fmt.Errorf("create posting command consumer: %w", err)
		}
		defer func() { _ = consumer.Close() }() //nolint:errcheck // best-effort close
		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("posting command consumer: %w", err)
			}
		}()
		logger.Info("consuming posting commands", "topic", cfg.Kafka.CommandTopic, "group", cfg.Kafka.ConsumerGroup)
	}

	// Wait for shutdown
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.Stop()
	if n, err := relay.Flush(shutdownCtx); err != nil {
		logger.Warn("final outbox flush failed", "error", err)
	} else if n > 0 {
		logger.Info("flushed outbox on shutdown", "events", n)
	}
	logger.Info("accountingd stopped")
	return runErr
}

// newJWTService builds a validation-only JWT service; a public key wins over
// the shared secret.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.JWTIssuer, Leeway: 30 * time.Second}
	switch {
	case cfg.JWTPublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.JWTPublicKey
	case cfg.JWTPublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key file: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	case cfg.JWTSecret != "":
		jwtCfg.Secret = cfg.JWTSecret
	default:
		return nil, errors.New("one of JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET must be set")
	}
	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	return svc, nil
}
