package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler reports the state of the service and its dependencies.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a HealthHandler over the named dependency checks.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Check godoc
// @Summary Health check
// @Description Check if service and its dependencies are healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			deps[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
