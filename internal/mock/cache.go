package mock

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// Cache implements the cache interface for tests.
type Cache struct {
	PendingOut []byte
	GetErr     error
	DeleteErr  error

	GetCalled    bool
	SetCalled    bool
	SetData      []byte
	SetTTL       time.Duration
	DeleteCalled bool
}

var _ port.Cache = (*Cache)(nil)

func (m *Cache) GetPendingPosts(ctx context.Context) ([]byte, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.PendingOut, nil
}

func (m *Cache) SetPendingPosts(ctx context.Context, data []byte, ttl time.Duration) {
	m.SetCalled = true
	m.SetData = data
	m.SetTTL = ttl
}

func (m *Cache) DeletePendingPosts(ctx context.Context) error {
	m.DeleteCalled = true
	return m.DeleteErr
}
