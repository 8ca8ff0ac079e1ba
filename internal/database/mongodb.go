package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/library-service/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoURI = errors.New("mongo connection string is not set")

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrNoURI
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// RetryPolicy bounds ConnectWithRetry.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration // doubled after every failed attempt
}

// ConnectWithRetry calls ConnectMongo until it succeeds, the attempts are used
// up, or ctx is done. A missing URI fails immediately.
func ConnectWithRetry(ctx context.Context, uri string, timeout time.Duration, p RetryPolicy) (*mongo.Client, error) {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	backoff := p.Backoff
	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		client, err := ConnectMongo(ctx, uri, timeout)
		if err == nil {
			return client, nil
		}
		if errors.Is(err, ErrNoURI) {
			return nil, err
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, p.Attempts, err)
		if attempt == p.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", p.Attempts, lastErr)
}
