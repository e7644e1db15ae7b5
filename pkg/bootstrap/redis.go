package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"huddle/internal/config"
	"huddle/internal/logger"
)

type RedisConnector struct {
	Config *config.Config
	Logger logger.Logger
}

func NewRedisConnector(cfg *config.Config, log logger.Logger) *RedisConnector {
	return &RedisConnector{
		Config: cfg,
		Logger: log,
	}
}

// InitRedis connects to Redis when a host is configured. Redis is optional;
// callers get (nil, nil) when it is absent and fall back to in-process paths.
func (rc *RedisConnector) InitRedis(ctx context.Context) (*redis.Client, error) {
	if rc.Config.Redis.Host == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", rc.Config.Redis.Host, rc.Config.Redis.Port),
		Password: rc.Config.Redis.Password,
		DB:       rc.Config.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	rc.Logger.Info("Redis connected successfully")
	return rdb, nil
}

func (rc *RedisConnector) ShutdownRedis(rdb *redis.Client) []error {
	var errs []error

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close error: %w", err))
		}
	}

	return errs
}
