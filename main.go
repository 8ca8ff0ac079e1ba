package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/library-service/internal/config"
	"github.com/gogotex/library-service/internal/database"
	"github.com/gogotex/library-service/internal/library/repository"
	"github.com/gogotex/library-service/internal/library/service"
	"github.com/gogotex/library-service/internal/server"
	"github.com/gogotex/library-service/pkg/logger"
	"github.com/gogotex/library-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	svc, client := openLibrary(ctx, cfg)
	if client != nil {
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Warnf("mongo disconnect: %v", err)
			}
		}()
	}

	rc := openRedis(ctx, cfg)
	if rc != nil {
		defer rc.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	r := server.New(cfg, server.Deps{Library: svc, Redis: rc, Metrics: reg})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("library service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down, waiting up to %v", cfg.Server.ShutdownTimeout)

	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	logger.Info("server exiting")
}

// openLibrary connects to MongoDB and returns the library service backed by it.
// When the store cannot be reached the service still starts: either on the
// in-memory repository (STORE_FALLBACK=memory) or on a repository that fails
// every call as unavailable. The client is nil unless the connection succeeded.
func openLibrary(ctx context.Context, cfg *config.Config) (service.Service, *mongo.Client) {
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, database.RetryPolicy{
		Attempts: cfg.MongoDB.ConnectAttempts,
		Backoff:  time.Second,
	})
	if err == nil {
		metrics.StoreConnected.Set(1)
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		logger.Infof("connected to MongoDB (%s.%s)", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		return service.NewMongoService(col, cfg.MongoDB.OpTimeout), client
	}

	metrics.StoreConnected.Set(0)
	if cfg.Store.Fallback == "memory" {
		logger.Warnf("MongoDB unavailable (%v): using in-memory store", err)
		return service.NewMemoryService(), nil
	}
	logger.Errorf("MongoDB unavailable (%v): library routes will fail until restart", err)
	return service.New(repository.NewUnavailableRepo(err)), nil
}

// openRedis returns a client only when Redis is configured and answers a ping.
func openRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		_ = rc.Close()
		return nil
	}
	logger.Infof("connected to Redis: %s", addr)
	return rc
}
