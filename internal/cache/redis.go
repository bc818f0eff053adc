package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "phrasebook:doc:"
	entryTTL  = 24 * time.Hour
)

// RedisOptions configures a Redis cache.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Redis is a Cache stored in Redis hashes keyed by document name.
type Redis struct {
	rdb *redis.Client
}

var _ Cache = (*Redis)(nil)

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

func (r *Redis) Get(ctx context.Context, name string) (Entry, bool, error) {
	vals, err := r.rdb.HGetAll(ctx, keyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("redis get %s: %w", name, err)
	}
	etag, ok := vals["etag"]
	if !ok {
		return Entry{}, false, nil
	}
	return Entry{Body: []byte(vals["body"]), ETag: etag}, true, nil
}

func (r *Redis) Set(ctx context.Context, name string, e Entry) error {
	key := keyPrefix + name
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, "etag", e.ETag, "body", e.Body)
	pipe.Expire(ctx, key, entryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}

// Purge deletes every phrasebook document key.
func (r *Redis) Purge(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis purge: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
