package di

import (
	"context"
	"fmt"
	"time"

	"graphlens/application/ports"
	"graphlens/application/queries"
	querybus "graphlens/application/queries/bus"
	"graphlens/application/queries/handlers"
	"graphlens/infrastructure/config"
	"graphlens/infrastructure/persistence/decorators"
	"graphlens/infrastructure/persistence/fixtures"
	"graphlens/infrastructure/persistence/memory"
	neo4jstore "graphlens/infrastructure/persistence/neo4j"
	"graphlens/infrastructure/persistence/postgres"
	"graphlens/pkg/observability"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const serviceName = "graphlens"

// ProvideLogger creates a configured logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(observability.LoggerConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
	})
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector(serviceName)
}

// ProvideTracer returns an OTLP tracer when tracing is enabled and a no-op tracer otherwise
func ProvideTracer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (trace.Tracer, func(), error) {
	if !cfg.EnableTracing {
		return noop.NewTracerProvider().Tracer(observability.TracerName), func() {}, nil
	}

	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.TracingEndpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	return tp.Tracer(), cleanup, nil
}

// ProvideGraphStore creates the configured backend and wraps it with metrics, tracing and
// the circuit breaker
func ProvideGraphStore(
	cfg *config.Config,
	collector *observability.Collector,
	tracer trace.Tracer,
	logger *zap.Logger,
) (ports.GraphStore, func(), error) {
	var store ports.GraphStore

	switch cfg.StoreBackend {
	case config.BackendMemory:
		memStore, err := memory.NewGraphStoreFromDataset(fixtures.Demo())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load in-memory dataset: %w", err)
		}
		store = memStore
	default:
		driver, err := neo4jstore.NewDriver(neo4jstore.Config{
			URL:      cfg.Neo4jURL,
			User:     cfg.Neo4jUser,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
		})
		if err != nil {
			return nil, nil, err
		}
		store = neo4jstore.NewGraphStore(driver, cfg.Neo4jDatabase, logger)
	}

	closeStore := store
	store = decorators.NewMetricsStore(store, collector)
	if cfg.EnableTracing {
		store = decorators.NewTracingStore(store, tracer, cfg.StoreBackend)
	}
	if cfg.EnableCircuitBreaker {
		store = decorators.NewCircuitBreakerStore(store, decorators.DefaultCircuitBreakerConfig("graph-store"), logger)
	}

	logger.Info("Graph store configured",
		zap.String("backend", cfg.StoreBackend),
		zap.Bool("circuit_breaker", cfg.EnableCircuitBreaker),
		zap.Bool("tracing", cfg.EnableTracing))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore.Close(ctx); err != nil {
			logger.Warn("Failed to close graph store", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

// storePinger probes the graph store through its connectivity check
type storePinger struct {
	store ports.GraphStore
}

func (p storePinger) Ping(ctx context.Context) error {
	return p.store.VerifyConnectivity(ctx)
}

// ProvideHealthChecks collects the readiness probes; Postgres is probed only when PG_URL is set
func ProvideHealthChecks(ctx context.Context, cfg *config.Config, store ports.GraphStore, logger *zap.Logger) (ports.HealthChecks, func(), error) {
	checks := ports.HealthChecks{"graph_store": storePinger{store: store}}
	if cfg.PostgresURL == "" {
		return checks, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	readiness := postgres.NewReadiness(pool, 2*time.Second, logger)
	checks["postgres"] = readiness

	return checks, readiness.Close, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// busMetrics adapts the Prometheus collector to the query bus metrics interface
type busMetrics struct {
	collector *observability.Collector
}

func (m busMetrics) StartTimer(metric, label string) querybus.Timer {
	return m.collector.StartTimer(metric, label)
}

func (m busMetrics) Increment(metric, label string) {
	m.collector.Increment(metric, label)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	store ports.GraphStore,
	collector *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.NewMetricsMiddleware(busMetrics{collector: collector}))

	// Register GetSubgraphQuery handler
	subgraphHandler := handlers.NewGetSubgraphHandler(store, collector, logger)
	if err := queryBus.Register(queries.GetSubgraphQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetSubgraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return subgraphHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register GetOwnershipGraphQuery handler
	ownershipHandler := handlers.NewGetOwnershipGraphHandler(store, collector, logger)
	if err := queryBus.Register(queries.GetOwnershipGraphQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetOwnershipGraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return ownershipHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register ListCompaniesQuery handler
	listCompaniesHandler := handlers.NewListCompaniesHandler(store, logger)
	if err := queryBus.Register(queries.ListCompaniesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListCompaniesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCompaniesHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register GetGovernanceGraphQuery handler
	governanceHandler := handlers.NewGetGovernanceGraphHandler(store, collector, logger)
	if err := queryBus.Register(queries.GetGovernanceGraphQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetGovernanceGraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return governanceHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register GetAccountDegreeQuery handler
	degreeHandler := handlers.NewGetAccountDegreeHandler(store, logger)
	if err := queryBus.Register(queries.GetAccountDegreeQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetAccountDegreeQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return degreeHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	return queryBus, nil
}
