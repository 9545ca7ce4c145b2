package mediaref

import (
	"context"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type referenceDetacherSrv struct {
	repo port.MediaReferenceRepository
}

// NewReferenceDetacher returns the service removing media references.
// Detaching a key that has no reference is a no-op.
func NewReferenceDetacher(repo port.MediaReferenceRepository) port.ReferenceDetacher {
	return &referenceDetacherSrv{repo: repo}
}

var _ port.ReferenceDetacher = (*referenceDetacherSrv)(nil)

func (s *referenceDetacherSrv) Detach(ctx context.Context, objectKey string) error {
	if err := s.repo.Delete(ctx, objectKey); err != nil {
		return err
	}
	logger.Debugf(ctx, "detached media reference %q", objectKey)
	return nil
}
