package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

const pendingPostsKey = "botposts:pending"

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetPendingPosts(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, pendingPostsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetPendingPosts(ctx context.Context, data []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, pendingPostsKey, data, ttl).Err(); err != nil {
		log.Printf("failed caching pending posts: %v", err)
	}
}

func (c *Cache) DeletePendingPosts(ctx context.Context) error {
	if err := c.client.Del(ctx, pendingPostsKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
