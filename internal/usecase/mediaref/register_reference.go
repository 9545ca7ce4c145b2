package mediaref

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/lcabrel/botposts-ms-go/internal/db"
	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type referenceRegistrarSrv struct {
	repo   port.MediaReferenceRepository
	strg   port.Storage
	bucket string
}

// NewReferenceRegistrar returns the service recording upload completions as
// media references.
func NewReferenceRegistrar(repo port.MediaReferenceRepository, strg port.Storage, bucket string) port.ReferenceRegistrar {
	return &referenceRegistrarSrv{repo: repo, strg: strg, bucket: bucket}
}

var _ port.ReferenceRegistrar = (*referenceRegistrarSrv)(nil)

func (s *referenceRegistrarSrv) RegisterReference(ctx context.Context, in port.RegisterReferenceInput) (*model.MediaReference, error) {
	if in.Kind != model.ReferenceKindPost && in.Kind != model.ReferenceKindAvatar {
		return nil, fmt.Errorf("unknown reference kind %q", in.Kind)
	}

	exists, err := s.strg.FileExists(ctx, s.bucket, in.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("checking object %q: %w", in.ObjectKey, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", port.ErrObjectNotFound, in.ObjectKey)
	}

	if existing, err := s.repo.GetByKey(ctx, in.ObjectKey); err == nil {
		if existing.Owner == in.Owner {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %q", port.ErrDuplicateReference, in.ObjectKey)
	} else if !errors.Is(err, port.ErrRefNotFound) {
		return nil, err
	}

	ref := &model.MediaReference{
		ID:         db.NewUUID(),
		ObjectKey:  in.ObjectKey,
		Owner:      in.Owner,
		Kind:       in.Kind,
		RecordType: model.RecordTypeNone,
	}
	s.fillDimensions(ctx, ref)

	if err := s.repo.Create(ctx, ref); err != nil {
		if errors.Is(err, port.ErrDuplicateReference) {
			// Lost a race with a concurrent registration for the same key.
			existing, getErr := s.repo.GetByKey(ctx, in.ObjectKey)
			if getErr == nil && existing.Owner == in.Owner {
				return existing, nil
			}
			return nil, fmt.Errorf("%w: %q", port.ErrDuplicateReference, in.ObjectKey)
		}
		return nil, err
	}

	logger.Infof(ctx, "✅ Registered media reference %q for owner %q", ref.ObjectKey, ref.Owner)
	return ref, nil
}

// fillDimensions sniffs image dimensions when the object looks like an
// image. Failures are logged and ignored: dimensions are advisory metadata.
func (s *referenceRegistrarSrv) fillDimensions(ctx context.Context, ref *model.MediaReference) {
	info, err := s.strg.StatFile(ctx, s.bucket, ref.ObjectKey)
	if err != nil || !strings.HasPrefix(info.ContentType, "image/") {
		return
	}

	file, err := s.strg.GetFile(ctx, s.bucket, ref.ObjectKey)
	if err != nil {
		logger.Debugf(ctx, "could not read %q for dimension sniffing: %v", ref.ObjectKey, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Debugf(ctx, "failed to close reader for %q", ref.ObjectKey)
		}
	}()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		logger.Debugf(ctx, "could not decode image config for %q: %v", ref.ObjectKey, err)
		return
	}
	ref.Width = &cfg.Width
	ref.Height = &cfg.Height
}
