// Package server assembles the HTTP router: middleware, library routes and
// operational endpoints.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/library-service/handlers"
	"github.com/gogotex/library-service/internal/config"
	"github.com/gogotex/library-service/internal/library/handler"
	"github.com/gogotex/library-service/internal/library/service"
	"github.com/gogotex/library-service/pkg/logger"
	"github.com/gogotex/library-service/pkg/metrics"
	"github.com/gogotex/library-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the runtime dependencies wired into the router.
type Deps struct {
	Library service.Service
	Redis   *redis.Client        // optional
	Metrics *prometheus.Registry // nil creates a private registry
}

// New builds the gin engine.
func New(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(ginzap.Ginzap(logger.L(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.L(), true))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	// probes and scrapes stay outside the limiter
	lib := r.Group("")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && deps.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			lib.Use(middleware.RedisRateLimitMiddleware(deps.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis (%.1f rps, burst %d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		} else {
			lib.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: memory (%.1f rps, burst %d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	checks := map[string]handlers.Check{
		"store": deps.Library.Ping,
	}
	if deps.Redis != nil {
		client := deps.Redis
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	handlers.NewHealthController(checks).Register(r)
	handlers.RegisterSwagger(r)
	handler.RegisterLibraryRoutes(lib, deps.Library)

	reg := deps.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.RegisterCollectors(reg)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}
