// SPDX-License-Identifier: MIT

package indexnow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the submitted URL set when no key is configured.
const DefaultRedisKey = "vidsite:indexnow:submitted"

// RedisConfig holds Redis connection settings for the ledger.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int
	Key      string // defaults to DefaultRedisKey
}

// RedisLedger stores the URL set as one JSON value in Redis, so several
// deploy hosts can share submission state.
type RedisLedger struct {
	client *redis.Client
	key    string
}

// NewRedisLedger connects to Redis and verifies the connection.
func NewRedisLedger(ctx context.Context, cfg RedisConfig) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return newRedisLedger(client, cfg.Key), nil
}

func newRedisLedger(client *redis.Client, key string) *RedisLedger {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisLedger{client: client, key: key}
}

// Key returns the Redis key of the ledger value.
func (l *RedisLedger) Key() string { return l.key }

// Load reads the recorded URLs. A missing key yields ErrLedgerEmpty.
func (l *RedisLedger) Load(ctx context.Context) ([]string, error) {
	data, err := l.client.Get(ctx, l.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrLedgerEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", l.key, err)
	}
	return decodeURLs(data)
}

// Save overwrites the stored URL set. The value never expires.
func (l *RedisLedger) Save(ctx context.Context, urls []string) error {
	data, err := encodeURLs(urls)
	if err != nil {
		return err
	}
	if err := l.client.Set(ctx, l.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", l.key, err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (l *RedisLedger) Close() error {
	return l.client.Close()
}
