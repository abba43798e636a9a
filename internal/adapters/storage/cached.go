package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var _ session.Storage = (*CachedStorage)(nil)

// CachedStorage reads through redis and writes to the durable storage
// first. Cache failures are logged and never fail the call.
type CachedStorage struct {
	next   session.Storage
	cache  *RedisStorage
	logger *logrus.Entry
}

func NewCachedStorage(next session.Storage, cache *RedisStorage, logger *logrus.Entry) *CachedStorage {
	return &CachedStorage{
		next:   next,
		cache:  cache,
		logger: logger.WithField("component", "session-cache"),
	}
}

func (c *CachedStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := c.cache.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, session.ErrKeyNotFound) {
		c.logger.WithError(err).Warn("redis read error")
	}

	v, err = c.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if setErr := c.cache.Set(ctx, key, v); setErr != nil {
		c.logger.WithError(setErr).Warn("redis set error")
	}
	return v, nil
}

func (c *CachedStorage) Set(ctx context.Context, key, value string) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		return err
	}
	c.invalidate(ctx, key)
	return nil
}

func (c *CachedStorage) Delete(ctx context.Context, key string) error {
	if err := c.next.Delete(ctx, key); err != nil {
		return err
	}
	c.invalidate(ctx, key)
	return nil
}

func (c *CachedStorage) Clear(ctx context.Context) error {
	if err := c.next.Clear(ctx); err != nil {
		return err
	}
	if err := c.cache.Clear(ctx); err != nil {
		c.logger.WithError(err).Warn("failed to invalidate cached session")
	}
	return nil
}

func (c *CachedStorage) invalidate(ctx context.Context, key string) {
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to invalidate cached value")
	}
}

type CachedProvider struct {
	db     *PostgresProvider
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

func NewCachedProvider(db *PostgresProvider, rdb *redis.Client, ttl time.Duration, logger *logrus.Entry) *CachedProvider {
	return &CachedProvider{db: db, rdb: rdb, ttl: ttl, logger: logger}
}

func (p *CachedProvider) ForSession(sessionID string) session.Storage {
	return NewCachedStorage(
		p.db.ForSession(sessionID),
		NewRedisStorage(p.rdb, sessionID, p.ttl),
		p.logger,
	)
}
