package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var _ session.Storage = (*RedisStorage)(nil)

// RedisStorage keeps a session as one hash; every write refreshes the TTL.
type RedisStorage struct {
	rdb       *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisStorage(rdb *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, sessionID: sessionID, ttl: ttl}
}

func sessionHashKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.HGet(ctx, sessionHashKey(s.sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: redis get %q: %w", key, err)
	}
	return v, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	hashKey := sessionHashKey(s.sessionID)

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, hashKey, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, hashKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.HDel(ctx, sessionHashKey(s.sessionID), key).Err(); err != nil {
		return fmt.Errorf("storage: redis delete %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, sessionHashKey(s.sessionID)).Err(); err != nil {
		return fmt.Errorf("storage: redis clear: %w", err)
	}
	return nil
}

type RedisProvider struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProvider(rdb *redis.Client, ttl time.Duration) *RedisProvider {
	return &RedisProvider{rdb: rdb, ttl: ttl}
}

func (p *RedisProvider) ForSession(sessionID string) session.Storage {
	return NewRedisStorage(p.rdb, sessionID, p.ttl)
}
