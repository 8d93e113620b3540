package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps window counters in a Redis-compatible store (Upstash in production).
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient builds a client from a redis:// or rediss:// URL. A non-empty token
// replaces whatever password the URL carries.
func NewRedisClient(rawURL, token string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse counter store url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}
	opts.DialTimeout = DefaultStoreTimeout
	opts.ReadTimeout = DefaultStoreTimeout
	opts.WriteTimeout = DefaultStoreTimeout
	opts.MaxRetries = 0

	return redis.NewClient(opts), nil
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is an in-process CounterStore for tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]*memoryEntry
	ops     uint64
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time // zero means no TTL
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		now:     now,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.expired(now) {
		entry = &memoryEntry{}
		s.entries[key] = entry
	}
	entry.count++

	// Opportunistic cleanup to avoid unbounded growth.
	s.ops++
	if s.ops%1024 == 0 {
		for k, v := range s.entries {
			if v.expired(now) {
				delete(s.entries, k)
			}
		}
	}

	return entry.count, nil
}

func (s *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		entry.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
