package submission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// PendingCacheTTL bounds the staleness window when an invalidation is lost.
const PendingCacheTTL = time.Minute

type pendingListerSrv struct {
	repo  port.SubmissionRepository
	cache port.Cache
}

// NewPendingLister returns the service listing the pending queue, served
// through the cache when warm.
func NewPendingLister(repo port.SubmissionRepository, cache port.Cache) port.PendingLister {
	return &pendingListerSrv{repo: repo, cache: cache}
}

var _ port.PendingLister = (*pendingListerSrv)(nil)

func (s *pendingListerSrv) ListPending(ctx context.Context) ([]model.Submission, error) {
	if data, err := s.cache.GetPendingPosts(ctx); err == nil && data != nil {
		var subs []model.Submission
		if uErr := json.Unmarshal(data, &subs); uErr == nil {
			return subs, nil
		} else {
			logger.Warnf(ctx, "discarding an undecodable pending cache entry: %v", uErr)
		}
	}

	subs, err := s.repo.ListByStatus(ctx, model.SubmissionStatusPending)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.Submission{}
	}

	if data, err := json.Marshal(subs); err == nil {
		s.cache.SetPendingPosts(ctx, data, PendingCacheTTL)
	}
	return subs, nil
}
