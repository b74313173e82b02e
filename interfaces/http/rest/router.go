package rest

import (
	"net/http"
	"time"

	"graphlens/application/ports"
	querybus "graphlens/application/queries/bus"
	"graphlens/interfaces/http/rest/handlers"
	"graphlens/interfaces/http/rest/middleware"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig carries the transport settings taken from configuration
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	EnableMetrics  bool
	Debug          bool
	RateLimitRPS   float64
	RateLimitBurst int
	Defaults       handlers.QueryDefaults
}

// Router creates and configures the HTTP router
type Router struct {
	queryBus  *querybus.QueryBus
	checks    ports.HealthChecks
	collector *observability.Collector
	config    RouterConfig
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queryBus *querybus.QueryBus,
	checks ports.HealthChecks,
	collector *observability.Collector,
	config RouterConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus:  queryBus,
		checks:    checks,
		collector: collector,
		config:    config,
		logger:    logger.Named("http"),
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.config.Debug)
	health := handlers.NewHealthHandler(rt.checks, rt.config.RequestTimeout, rt.logger)

	router.Get("/health", health.Health)
	router.Get("/ready", health.Ready)
	if rt.config.EnableMetrics && rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Group(func(r chi.Router) {
		if rt.config.RateLimitRPS > 0 {
			limiter := middleware.NewIPRateLimiter(rt.config.RateLimitRPS, rt.config.RateLimitBurst)
			r.Use(middleware.RateLimit(limiter, errorHandler))
		}
		if rt.config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(rt.config.RequestTimeout))
		}

		graphHandler := handlers.NewGraphHandler(rt.queryBus, rt.config.Defaults, errorHandler, rt.logger)
		r.Get("/graph/subgraph", graphHandler.GetSubgraph)
		r.Get("/metrics/degree/{id}", graphHandler.GetAccountDegree)

		ownershipHandler := handlers.NewOwnershipHandler(rt.queryBus, errorHandler, rt.logger)
		r.Get("/ownership/graph", ownershipHandler.GetOwnershipGraph)
		r.Get("/ownership/companies", ownershipHandler.ListCompanies)

		governanceHandler := handlers.NewGovernanceHandler(rt.queryBus, rt.config.Defaults, errorHandler, rt.logger)
		r.Get("/governance/full-graph", governanceHandler.GetFullGraph)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})

	return router
}
