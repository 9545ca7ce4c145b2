package reaper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// Prefixes swept for unreferenced objects.
var sweepPrefixes = []string{"post-media/", "avatars/"}

type orphanReaperSrv struct {
	refRepo port.MediaReferenceRepository
	strg    port.Storage
	bucket  string
}

// NewOrphanReaper returns the service deleting blob objects no media
// reference points at. Objects younger than the cutoff are spared so an
// upload in flight between the presigned PUT and its register call is
// never swept.
func NewOrphanReaper(refRepo port.MediaReferenceRepository, strg port.Storage, bucket string) port.OrphanReaper {
	return &orphanReaperSrv{refRepo: refRepo, strg: strg, bucket: bucket}
}

var _ port.OrphanReaper = (*orphanReaperSrv)(nil)

func (s *orphanReaperSrv) ReapOrphans(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	reaped := 0
	for _, prefix := range sweepPrefixes {
		objects, err := s.strg.ListFiles(ctx, s.bucket, prefix)
		if err != nil {
			return reaped, fmt.Errorf("listing %q: %w", prefix, err)
		}

		for _, obj := range objects {
			if obj.LastModified.After(cutoff) {
				continue
			}

			_, err := s.refRepo.GetByKey(ctx, obj.Key)
			if err == nil {
				continue
			}
			if !errors.Is(err, port.ErrRefNotFound) {
				return reaped, err
			}

			if err := s.strg.RemoveFile(ctx, s.bucket, obj.Key); err != nil && !errors.Is(err, port.ErrObjectNotFound) {
				logger.Errorf(ctx, "❌ Could not reap orphan %q: %v", obj.Key, err)
				continue
			}
			logger.Infof(ctx, "✅ Reaped orphan object %q", obj.Key)
			reaped++
		}
	}

	return reaped, nil
}
