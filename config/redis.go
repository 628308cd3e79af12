package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// ConnectRedis initializes a shared Redis client based on environment variables.
// Returns (nil, nil) when REDIS_ENABLED is not "true" or the app runs in the test environment;
// callers then fall back to in-memory session storage.
func ConnectRedis() (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		return redisClient, nil
	}
	if os.Getenv("REDIS_ENABLED") != "true" || os.Getenv("APPENV") == "test" {
		return nil, nil
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	pass := os.Getenv("REDIS_PASS")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if v, e := strconv.Atoi(dbStr); e == nil {
			dbNum = v
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	redisClient = rdb
	log.Info().Str("addr", addr).Msg("connected to redis")
	return redisClient, nil
}

// GetRedisClient returns the initialized Redis client (may be nil if ConnectRedis failed or not called).
func GetRedisClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	return redisClient
}

// SetRedisClientForTest allows tests to inject a mock Redis client.
func SetRedisClientForTest(client *redis.Client) {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = client
}
