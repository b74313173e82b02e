package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graphlens/infrastructure/config"
	"graphlens/infrastructure/persistence/fixtures"
	neo4jstore "graphlens/infrastructure/persistence/neo4j"
	"graphlens/infrastructure/persistence/postgres"
	"graphlens/pkg/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedOptions struct {
	attempts     int
	interval     time.Duration
	skipPostgres bool
}

func newRootCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Wait for the data stores and load the demo graph into Neo4j",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.attempts, "attempts", 60, "connection attempts per data store")
	cmd.Flags().DurationVar(&opts.interval, "interval", 2*time.Second, "delay between connection attempts")
	cmd.Flags().BoolVar(&opts.skipPostgres, "skip-postgres", false, "do not wait for Postgres even when PG_URL is set")
	return cmd
}

func run(ctx context.Context, opts seedOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.StoreBackend != config.BackendNeo4j {
		return fmt.Errorf("seeding requires the neo4j backend, got %q", cfg.StoreBackend)
	}

	logger, err := observability.NewLogger(observability.LoggerConfig{
		ServiceName: "seed",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer observability.SyncLogger(logger)

	if cfg.PostgresURL != "" && !opts.skipPostgres {
		pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		readiness := postgres.NewReadiness(pool, opts.interval, logger)
		defer readiness.Close()

		if err := waitFor(ctx, "postgres", readiness.Ping, opts.attempts, opts.interval, logger); err != nil {
			return err
		}
	}

	driver, err := neo4jstore.NewDriver(neo4jstore.Config{
		URL:      cfg.Neo4jURL,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := driver.Close(context.Background()); err != nil {
			logger.Warn("Failed to close neo4j driver", zap.Error(err))
		}
	}()

	if err := waitFor(ctx, "neo4j", driver.VerifyConnectivity, opts.attempts, opts.interval, logger); err != nil {
		return err
	}

	summary, err := neo4jstore.NewSeeder(driver, cfg.Neo4jDatabase, logger).Seed(ctx, fixtures.Demo())
	if err != nil {
		return err
	}

	logger.Info("Seed complete",
		zap.Int("nodes_created", summary.NodesCreated),
		zap.Int("relationships_created", summary.RelationshipsCreated),
		zap.Int("properties_set", summary.PropertiesSet),
	)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
