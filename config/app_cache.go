package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/ratelimit"
)

var ErrCounterStoreNotConfigured = errors.New("counter store url is not configured")

// NewCounterStore connects the rate limiter to the hosted Redis-compatible store. The
// connection is checked once; a failed ping is logged but not fatal since the limiter
// fails open.
func NewCounterStore(logger *log.Logger, secrets Secrets) (ratelimit.CounterStore, error) {
	if secrets.UpstashRedisURL == "" {
		return nil, ErrCounterStoreNotConfigured
	}

	client, err := ratelimit.NewRedisClient(secrets.UpstashRedisURL, secrets.UpstashRedisToken)
	if err != nil {
		logger.Error("Invalid counter store URL", "error", err)
		return nil, fmt.Errorf("counter store: %w", err)
	}

	store := ratelimit.NewRedisStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), ratelimit.DefaultStoreTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("Counter store unreachable at startup; requests will be allowed until it recovers", "error", err)
	} else {
		logger.Info("Counter store connected successfully")
	}

	return store, nil
}

// NewCounterStoreOrMemory falls back to an in-process store in development environments only.
func NewCounterStoreOrMemory(logger *log.Logger, secrets Secrets) (ratelimit.CounterStore, error) {
	store, err := NewCounterStore(logger, secrets)
	if err == nil {
		return store, nil
	}

	if IsDevelopmentEnv(GetAppEnv()) {
		logger.Warn("Using in-memory counter store", "reason", err.Error())
		return ratelimit.NewMemoryStore(), nil
	}
	return nil, err
}

func CloseCounterStore(store ratelimit.CounterStore, logger *log.Logger) error {
	if store == nil {
		logger.Info("No counter store provided; skipping close")
		return nil
	}

	if err := store.Close(); err != nil {
		logger.Error("Failed to close counter store", "error", err)
		return err
	}

	logger.Info("Counter store connection closed")
	return nil
}
