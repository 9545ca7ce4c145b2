package mediaref

import (
	"context"

	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type referenceLookupSrv struct {
	repo port.MediaReferenceRepository
}

func NewReferenceLookup(repo port.MediaReferenceRepository) port.ReferenceLookup {
	return &referenceLookupSrv{repo: repo}
}

var _ port.ReferenceLookup = (*referenceLookupSrv)(nil)

func (s *referenceLookupSrv) Lookup(ctx context.Context, objectKey string) (*model.MediaReference, error) {
	return s.repo.GetByKey(ctx, objectKey)
}
