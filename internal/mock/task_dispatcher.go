package mock

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// TaskDispatcher implements the dispatcher interface for tests.
type TaskDispatcher struct {
	EnqueueErr error

	EnqueueCalled bool
	OlderThan     time.Duration
}

var _ port.TaskDispatcher = (*TaskDispatcher)(nil)

func (m *TaskDispatcher) EnqueueReapOrphans(ctx context.Context, olderThan time.Duration) error {
	m.EnqueueCalled = true
	m.OlderThan = olderThan
	return m.EnqueueErr
}
