package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/library-service/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// HealthController serves liveness and readiness.
type HealthController struct {
	checks  map[string]Check
	started time.Time
	timeout time.Duration
}

func NewHealthController(checks map[string]Check) *HealthController {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &HealthController{checks: checks, started: time.Now(), timeout: 2 * time.Second}
}

func (h *HealthController) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health answers as long as the process serves HTTP.
func (h *HealthController) Health(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}

// Ready returns 200 only when every registered dependency check passes.
func (h *HealthController) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ready := true
	deps := map[string]bool{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			logger.Warnf("readiness: %s: %v", name, err)
			deps[name] = false
			ready = false
			continue
		}
		deps[name] = true
	}

	body := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(h.started).String()}
	if !ready {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
