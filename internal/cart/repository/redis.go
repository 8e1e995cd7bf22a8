package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:session:"

// RedisRepository keeps each cart as a JSON snapshot that expires after ttl
// of inactivity.
type RedisRepository struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisRepository(client *cache.RedisClient, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	data, err := r.client.Client.Get(ctx, Key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var s cart.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &s, nil
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, s cart.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Client.Set(ctx, Key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Client.Del(ctx, Key(sessionID)).Err()
}
