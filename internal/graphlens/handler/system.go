package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/graphlens/internal/graphlens/metrics"
	"github.com/kart-io/graphlens/internal/graphlens/store"
	"github.com/kart-io/graphlens/pkg/knowledge"
	obs "github.com/kart-io/graphlens/pkg/observability/metrics"
)

// SystemHandler serves health, stats and metrics endpoints.
type SystemHandler struct {
	registry  store.Registry
	knowledge knowledge.Store
	version   string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(registry store.Registry, ks knowledge.Store, version string) *SystemHandler {
	return &SystemHandler{registry: registry, knowledge: ks, version: version}
}

// Health handles GET /health. The service is healthy when the registry is
// reachable; the toolkit state is reported but does not fail the probe,
// queries degrade instead.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	registryStatus := "ok"
	healthy := true
	if err := h.registry.Ping(ctx); err != nil {
		registryStatus = err.Error()
		healthy = false
	}

	knowledgeStatus := "ok"
	if err := h.knowledge.Ping(ctx); err != nil {
		knowledgeStatus = err.Error()
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    state,
		"version":   h.version,
		"registry":  registryStatus,
		"knowledge": knowledgeStatus,
	})
}

// Stats handles GET /stats with business counters and per-tenant document
// counts.
func (h *SystemHandler) Stats(c *gin.Context) {
	stats := metrics.Get().Stats()

	counts, err := h.registry.CountByTenant(c.Request.Context())
	if err == nil {
		stats["tenants"] = counts
	}

	writeSuccess(c, stats)
}

// Metrics handles GET /metrics in Prometheus text format.
func (h *SystemHandler) Metrics(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(obs.Export()))
}
