package di

import (
	"graphlens/application/ports"
	querybus "graphlens/application/queries/bus"
	"graphlens/infrastructure/config"
	"graphlens/pkg/observability"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Collector    *observability.Collector
	Tracer       trace.Tracer
	Store        ports.GraphStore
	HealthChecks ports.HealthChecks
	QueryBus     *querybus.QueryBus
}
