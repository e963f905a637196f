package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis implements Cache on top of a Redis server. Values are stored as JSON;
// cache write failures are logged and otherwise ignored, a cache miss is
// always a safe outcome.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

var _ Cache = (*Redis)(nil)

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis creates a Redis-backed cache and verifies the connection.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ctx: ctx}, nil
}

func (r *Redis) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache: failed to marshal value")
		return
	}
	if err := r.client.Set(r.ctx, key, data, duration).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache: failed to set key")
	}
}

func (r *Redis) Get(key string, dest interface{}) bool {
	data, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache: failed to get key")
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache: failed to unmarshal value")
		return false
	}
	return true
}

func (r *Redis) Delete(key string) {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache: failed to delete key")
	}
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
