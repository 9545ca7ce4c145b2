package deletion

import (
	"context"
	"errors"
	"fmt"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// RoleModerator may delete any media, owners only their own.
const RoleModerator = "moderator"

type mediaDeleterSrv struct {
	refRepo port.MediaReferenceRepository
	subRepo port.SubmissionRepository
	strg    port.Storage
	bucket  string
}

// NewMediaDeleter returns the service coordinating media deletion across
// the blob store, the reference tracker and the submission queue.
func NewMediaDeleter(refRepo port.MediaReferenceRepository, subRepo port.SubmissionRepository, strg port.Storage, bucket string) port.MediaDeleter {
	return &mediaDeleterSrv{refRepo: refRepo, subRepo: subRepo, strg: strg, bucket: bucket}
}

var _ port.MediaDeleter = (*mediaDeleterSrv)(nil)

func (s *mediaDeleterSrv) DeleteMedia(ctx context.Context, in port.DeleteMediaInput) error {
	ref, err := s.refRepo.GetByKey(ctx, in.ObjectKey)
	if err != nil {
		// No reference means nothing to reconcile. A repeat delete lands
		// here and must succeed.
		if errors.Is(err, port.ErrRefNotFound) {
			logger.Debugf(ctx, "delete of unregistered key %q is a no-op", in.ObjectKey)
			return nil
		}
		return err
	}

	if ref.Owner != in.RequestedBy && !hasRole(in.Roles, RoleModerator) {
		return fmt.Errorf("%w: %q", port.ErrForbidden, in.ObjectKey)
	}

	referencing, err := s.subRepo.ListReferencing(ctx, in.ObjectKey)
	if err != nil {
		return err
	}
	published := 0
	for _, sub := range referencing {
		if sub.Status == model.SubmissionStatusPublished {
			published++
		}
	}
	if published > 0 && !in.Force {
		return fmt.Errorf("%w: %q", port.ErrInUse, in.ObjectKey)
	}
	if len(referencing) > 0 {
		// Every referencing submission loses the key, pending ones included,
		// so none of them can later publish pointing at a missing object.
		if err := s.subRepo.StripMediaKey(ctx, in.ObjectKey); err != nil {
			return fmt.Errorf("stripping %q from submissions: %w", in.ObjectKey, err)
		}
		if published > 0 {
			logger.Warnf(ctx, "force-stripped %q from %d published submission(s)", in.ObjectKey, published)
		} else {
			logger.Infof(ctx, "stripped %q from %d pending submission(s)", in.ObjectKey, len(referencing))
		}
	}

	// Blob first: a missing object is a success, anything else leaves the
	// reference in place so the delete can be retried.
	if err := s.strg.RemoveFile(ctx, s.bucket, in.ObjectKey); err != nil && !errors.Is(err, port.ErrObjectNotFound) {
		return fmt.Errorf("removing object %q: %w", in.ObjectKey, err)
	}

	if err := s.refRepo.Delete(ctx, in.ObjectKey); err != nil {
		return err
	}

	logger.Infof(ctx, "✅ Deleted media %q (requested by %q)", in.ObjectKey, in.RequestedBy)
	return nil
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
