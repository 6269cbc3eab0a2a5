package session

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "logbook:"

// RedisLogbookStore keeps anonymous session logbooks in Redis. Every write
// refreshes the TTL, so an idle session's history expires on its own.
type RedisLogbookStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLogbookStore(client *redis.Client, ttl time.Duration) *RedisLogbookStore {
	return &RedisLogbookStore{client: client, ttl: ttl}
}

func redisKey(owner ports.Owner) (string, error) {
	k, err := owner.Key()
	if err != nil {
		return "", err
	}
	return keyPrefix + k, nil
}

func (s *RedisLogbookStore) Read(ctx context.Context, owner ports.Owner) (_ domain.Logbook, err error) {
	defer obs.Time(ctx, "logbook.redis.Read")(&err)

	key, err := redisKey(owner)
	if err != nil {
		return nil, fmt.Errorf("read session logbook: %w", err)
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Logbook{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session logbook key=%s: %w", key, err)
	}

	l, err := domain.DecodeLogbook(raw)
	if err != nil {
		return nil, fmt.Errorf("read session logbook key=%s: %w", key, err)
	}
	return l, nil
}

func (s *RedisLogbookStore) Write(ctx context.Context, owner ports.Owner, logbook domain.Logbook) (err error) {
	defer obs.Time(ctx, "logbook.redis.Write")(&err)

	key, err := redisKey(owner)
	if err != nil {
		return fmt.Errorf("write session logbook: %w", err)
	}

	raw, err := domain.EncodeLogbook(logbook)
	if err != nil {
		return fmt.Errorf("write session logbook key=%s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session logbook key=%s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable; used by the health endpoint.
func (s *RedisLogbookStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
