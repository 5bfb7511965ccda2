package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

// SnapshotCache stores derived snapshots (leaderboard, global stats) the way
// the UI used to keep them alongside the record store. It is optional; a nil
// cache disables caching.
type SnapshotCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type snapshotCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewSnapshotCache(log *logger.Logger) (SnapshotCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &snapshotCache{
		log: log.With("service", "RedisSnapshotCache"),
		rdb: rdb,
	}, nil
}

func (c *snapshotCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("snapshot cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A stale or mangled snapshot is treated as a miss.
		c.log.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *snapshotCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("snapshot cache not initialized")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

func (c *snapshotCache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("snapshot cache not initialized")
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *snapshotCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
