// Command export uploads a JSON snapshot of the library collection to MinIO.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gogotex/library-service/internal/config"
	"github.com/gogotex/library-service/internal/database"
	"github.com/gogotex/library-service/internal/library/export"
	"github.com/gogotex/library-service/internal/library/service"
	"github.com/gogotex/library-service/internal/storage"
	"github.com/gogotex/library-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	err = run(context.Background(), cfg)
	if err != nil {
		logger.Errorf("export: %v", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run performs one export. Every connection it opens is closed before it returns.
func run(ctx context.Context, cfg *config.Config) error {
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, database.RetryPolicy{
		Attempts: cfg.MongoDB.ConnectAttempts,
		Backoff:  time.Second,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}()

	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	key, snap, err := export.New(service.NewMongoService(col, cfg.MongoDB.OpTimeout), store).Run(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	link, err := store.GetPresignedURL(ctx, key, 24*time.Hour)
	if err != nil {
		logger.Warnf("presign %s: %v", key, err)
		return nil
	}
	logger.Infof("snapshot of %d entries in bucket %s: %s", snap.Total, store.Bucket(), link)
	return nil
}
