package cache

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetPendingPosts(ctx context.Context) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetPendingPosts(ctx context.Context, data []byte, ttl time.Duration) {}

func (n *NoopCache) DeletePendingPosts(ctx context.Context) error { return nil }
