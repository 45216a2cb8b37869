package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connect4/internal/repository"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "connect4:game:"

// Client is the subset of go-redis the store needs. *redis.Client satisfies it.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Store keeps game records as JSON strings. Every save refreshes the key's
// TTL, so idle games expire on their own: finished games after ttl,
// unfinished ones after twice that, matching the memory store's sweep.
type Store struct {
	client Client
	ttl    time.Duration
}

func NewStore(client Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *Store) Save(ctx context.Context, rec *game.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", rec.ID, err)
	}
	ttl := s.ttl
	if rec.FinishedAt == nil {
		ttl *= 2
	}
	if err := s.client.Set(ctx, key(rec.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*game.Record, error) {
	data, err := s.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}

	var rec game.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List walks the keyspace with SCAN. Keys that expire mid-walk are skipped.
func (s *Store) List(ctx context.Context) ([]*game.Record, error) {
	var (
		cursor uint64
		out    []*game.Record
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range keys {
			rec, err := s.Load(ctx, k[len(keyPrefix):])
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}
