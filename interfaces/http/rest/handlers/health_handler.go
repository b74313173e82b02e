package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"graphlens/application/ports"
	"graphlens/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HealthHandler serves liveness and readiness
type HealthHandler struct {
	checks  ports.HealthChecks
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks ports.HealthChecks, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HealthHandler{
		checks:  checks,
		timeout: timeout,
		logger:  logger,
	}
}

// CheckStatus is the outcome of one readiness probe
type CheckStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessResponse is the body of GET /ready
type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []CheckStatus `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready; every probe runs concurrently and a single failure makes the service unready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make([]CheckStatus, 0, len(h.checks))
	)

	var g errgroup.Group
	for name, pinger := range h.checks {
		g.Go(func() error {
			status := CheckStatus{Name: name, Status: "ok"}
			err := pinger.Ping(ctx)
			if err != nil {
				status.Status = "failed"
				status.Error = err.Error()
			}
			mu.Lock()
			results = append(results, status)
			mu.Unlock()
			return err
		})
	}
	err := g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	response := ReadinessResponse{Status: "ready", Checks: results}
	status := http.StatusOK
	if err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	common.RespondJSON(w, status, response)
}
