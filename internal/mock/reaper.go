package mock

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// OrphanReaper implements the reaper interface for tests.
type OrphanReaper struct {
	ReapedOut int
	Err       error

	Called    bool
	OlderThan time.Duration
}

var _ port.OrphanReaper = (*OrphanReaper)(nil)

func (m *OrphanReaper) ReapOrphans(ctx context.Context, olderThan time.Duration) (int, error) {
	m.Called = true
	m.OlderThan = olderThan
	if m.Err != nil {
		return 0, m.Err
	}
	return m.ReapedOut, nil
}
