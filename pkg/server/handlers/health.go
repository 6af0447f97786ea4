package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Prober reports whether the entity store answers. *store.Client satisfies
// this through its Health method.
type Prober interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	probe Prober
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(probe Prober) *HealthHandler {
	return &HealthHandler{
		probe: probe,
	}
}

// HealthCheck handles GET /healthz - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "dataspace",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"build_info": gin.H{
			"git_commit": GitCommit,
			"build_time": BuildTime,
			"go_version": GoVersion,
		},
	})
}

// ReadinessCheck handles GET /readyz - reports whether the entity store
// is reachable.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := gin.H{
		"status":    "ready",
		"service":   "dataspace",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)

	if h.probe == nil {
		checks["entity_store"] = gin.H{
			"status": "unhealthy",
			"error":  "entity store probe not configured",
		}
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	started := time.Now()
	err := h.probe.Health(ctx)
	duration := time.Since(started)

	if err != nil {
		checks["entity_store"] = gin.H{
			"status":   "unhealthy",
			"error":    err.Error(),
			"duration": duration.String(),
		}
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	checks["entity_store"] = gin.H{
		"status":   "healthy",
		"duration": duration.String(),
	}
	c.JSON(http.StatusOK, response)
}
