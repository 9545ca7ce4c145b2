package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type deciderSrv struct {
	repo  port.SubmissionRepository
	cache port.Cache
}

// NewDecider returns the service applying moderation decisions. The
// compare-and-set in the repository guarantees a single winner under
// concurrent decisions.
func NewDecider(repo port.SubmissionRepository, cache port.Cache) port.Decider {
	return &deciderSrv{repo: repo, cache: cache}
}

var _ port.Decider = (*deciderSrv)(nil)

func (s *deciderSrv) Decide(ctx context.Context, in port.DecideInput) (*model.Submission, error) {
	if in.Outcome != model.OutcomeApprove && in.Outcome != model.OutcomeReject {
		return nil, fmt.Errorf("unknown outcome %q", in.Outcome)
	}

	sub, err := s.repo.Decide(ctx, in.ID, in.Outcome, in.DecidedBy, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.cache.DeletePendingPosts(ctx); err != nil {
		logger.Warnf(ctx, "could not invalidate the pending cache: %v", err)
	}

	logger.Infof(ctx, "✅ Submission #%d is now %q (decided by %q)", sub.ID, sub.Status, in.DecidedBy)
	return sub, nil
}
