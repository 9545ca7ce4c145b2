package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type submitterSrv struct {
	repo    port.SubmissionRepository
	refRepo port.MediaReferenceRepository
	cache   port.Cache
}

// NewSubmitter returns the service accepting new submissions into the
// pending queue.
func NewSubmitter(repo port.SubmissionRepository, refRepo port.MediaReferenceRepository, cache port.Cache) port.Submitter {
	return &submitterSrv{repo: repo, refRepo: refRepo, cache: cache}
}

var _ port.Submitter = (*submitterSrv)(nil)

func (s *submitterSrv) Submit(ctx context.Context, in port.SubmitInput) (*model.Submission, error) {
	for _, key := range in.MediaKeys {
		ref, err := s.refRepo.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, port.ErrRefNotFound) {
				return nil, fmt.Errorf("%w: %q is not registered", port.ErrUnownedMedia, key)
			}
			return nil, err
		}
		if ref.Owner != in.Author {
			return nil, fmt.Errorf("%w: %q", port.ErrUnownedMedia, key)
		}
	}

	if in.Source != "" && in.ExternalID != "" {
		if _, err := s.repo.GetByExternalID(ctx, in.Source, in.ExternalID); err == nil {
			return nil, fmt.Errorf("%w: %s/%s", port.ErrDuplicateSubmission, in.Source, in.ExternalID)
		} else if !errors.Is(err, port.ErrNotFound) {
			return nil, err
		}
	}

	sub := &model.Submission{
		Author:           in.Author,
		Body:             in.Body,
		MediaKeys:        model.MediaKeys(in.MediaKeys),
		Source:           in.Source,
		ExternalID:       in.ExternalID,
		ExternalUsername: in.ExternalUsername,
		Status:           model.SubmissionStatusPending,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.cache.DeletePendingPosts(ctx); err != nil {
		logger.Warnf(ctx, "could not invalidate the pending cache: %v", err)
	}

	logger.Infof(ctx, "✅ Submission #%d by %q accepted into the pending queue", sub.ID, sub.Author)
	return sub, nil
}
