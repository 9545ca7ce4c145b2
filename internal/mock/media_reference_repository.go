package mock

import (
	"context"

	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// MediaReferenceRepo implements reference persistence for tests, backed by
// a map keyed on object key.
type MediaReferenceRepo struct {
	Refs map[string]*model.MediaReference

	CreateErr error
	GetErr    error
	DeleteErr error

	CreateCalled bool
	Created      *model.MediaReference
	DeleteCalled bool
	DeletedKey   string
}

var _ port.MediaReferenceRepository = (*MediaReferenceRepo)(nil)

func (m *MediaReferenceRepo) Create(ctx context.Context, ref *model.MediaReference) error {
	m.CreateCalled = true
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.Refs == nil {
		m.Refs = map[string]*model.MediaReference{}
	}
	if _, exists := m.Refs[ref.ObjectKey]; exists {
		return port.ErrDuplicateReference
	}
	m.Refs[ref.ObjectKey] = ref
	m.Created = ref
	return nil
}

func (m *MediaReferenceRepo) GetByKey(ctx context.Context, objectKey string) (*model.MediaReference, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	ref, ok := m.Refs[objectKey]
	if !ok {
		return nil, port.ErrRefNotFound
	}
	return ref, nil
}

func (m *MediaReferenceRepo) Delete(ctx context.Context, objectKey string) error {
	m.DeleteCalled = true
	m.DeletedKey = objectKey
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Refs, objectKey)
	return nil
}
