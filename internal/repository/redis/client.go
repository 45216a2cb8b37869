package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/connect4/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it. A nil client with an error means
// Redis is unavailable and callers should fall back to the memory store.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	log := logger.Component("redis")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Could not connect to Redis")
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Msg("Connected to Redis")
	return client, nil
}
