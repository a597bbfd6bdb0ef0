package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/store"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store store.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storeClient store.Client) *HealthHandler {
	return &HealthHandler{store: storeClient}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "temporal-agent",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "temporal-agent",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready - verifies the graph store answers a
// trivial query within the probe deadline.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := gin.H{
		"status":    "ready",
		"service":   "temporal-agent",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)

	if h.store == nil {
		checks["store"] = gin.H{
			"status": "unhealthy",
			"error":  "store client not initialized",
		}
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	probe := &types.GeneratedQuery{Text: "RETURN 1 AS ok LIMIT 1"}
	probeStart := time.Now()
	_, err := h.store.Execute(ctx, probe)
	probeDuration := time.Since(probeStart)

	if err != nil {
		checks["store"] = gin.H{
			"status":   "unhealthy",
			"error":    err.Error(),
			"duration": probeDuration.String(),
		}
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	checks["store"] = gin.H{
		"status":   "healthy",
		"duration": probeDuration.String(),
	}
	c.JSON(http.StatusOK, response)
}

// DetailedHealthCheck handles GET /health/detailed
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "temporal-agent",
		"version": Version,
		"build_info": gin.H{
			"git_commit": GitCommit,
			"build_time": BuildTime,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"go_version": GoVersion,
		},
		"metrics": gin.H{
			"goroutines":   runtime.NumGoroutine(),
			"heap_objects": m.HeapObjects,
			"gc_cycles":    m.NumGC,
		},
	})
}
