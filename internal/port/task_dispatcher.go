package port

import (
	"context"
	"time"
)

// TaskDispatcher enqueues asynchronous maintenance tasks.
type TaskDispatcher interface {
	// EnqueueReapOrphans schedules a sweep of blob objects older than the
	// cutoff that no media reference points at.
	EnqueueReapOrphans(ctx context.Context, olderThan time.Duration) error
}
