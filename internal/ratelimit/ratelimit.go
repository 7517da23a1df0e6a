// Package ratelimit bounds chat throughput per caller with a fixed-window
// TTL counter in Redis, so the bound holds across every running instance.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/redis/go-redis/v9"
)

// ErrLimited is returned when the caller has exhausted the window.
var ErrLimited = errors.NewSentinel("rate limited")

type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// New builds a limiter allowing limit calls per window. A nil client
// disables limiting, for deployments without Redis.
func New(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow consumes one call for the key. Returns ErrLimited when the window
// is exhausted. Redis failures fail open: a degraded limiter must not take
// the game down with it.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}

	counterKey := "ratelimit:" + key
	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, counterKey)
	pipe.ExpireNX(ctx, counterKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.LogAttrs(ctx, slog.LevelWarn, "rate limiter unavailable, failing open",
			slog.String("key", key),
			errors.SlogError(err))
		return nil
	}

	if count.Val() > l.limit {
		return errors.Wrap(ErrLimited, "chat rate exceeded",
			slog.String("key", key),
			slog.Int64("count", count.Val()),
			slog.Int64("limit", l.limit))
	}
	return nil
}
