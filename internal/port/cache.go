package port

import (
	"context"
	"time"
)

// Cache provides caching for the pending-queue listing.
type Cache interface {
	// GetPendingPosts returns nil on a cache miss.
	GetPendingPosts(ctx context.Context) ([]byte, error)
	SetPendingPosts(ctx context.Context, data []byte, ttl time.Duration)
	DeletePendingPosts(ctx context.Context) error
}
