package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, profileID string) (*domain.Cart, error) {
	key := cacheKey(profileID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err2 := json.Unmarshal(data, &cart); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}
	if cart.SchemaVersion != domain.CartSchemaVersion {
		return nil, ErrCacheMiss
	}

	return &cart, nil
}

func (r *RedisCache) Set(ctx context.Context, profileID string, cart *domain.Cart) error {
	key := cacheKey(profileID)
	jsonCart, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// jitter spreads expiry so a burst of carts doesn't miss at once
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	ret := r.client.Set(ctx, key, jsonCart, ttl)
	if ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, profileID string) error {
	key := cacheKey(profileID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(profileID string) string {
	return fmt.Sprintf("britannia-cart:%s", profileID)
}

var _ CartCache = (*RedisCache)(nil)
