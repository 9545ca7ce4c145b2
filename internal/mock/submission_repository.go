package mock

import (
	"context"
	"sync"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// SubmissionRepo implements submission persistence for tests. Decide is
// guarded by a mutex plus a status check so concurrency tests observe real
// compare-and-set semantics.
type SubmissionRepo struct {
	mu sync.Mutex

	Record       *model.Submission
	ByExternalID *model.Submission
	ListOut      []model.Submission
	Referencing  []model.Submission

	CreateErr        error
	GetErr           error
	GetByExternalErr error
	ListErr          error
	DecideErr        error
	ListRefErr       error
	StripErr         error

	CreateCalled  bool
	Created       *model.Submission
	DecideCalled  bool
	DecideCount   int
	DecidedID     int64
	Outcome       string
	StripCalled   bool
	StrippedKey   string
	NextID        int64
	ListRefCalled bool
}

var _ port.SubmissionRepository = (*SubmissionRepo)(nil)

func (m *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalled = true
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.NextID++
	sub.ID = m.NextID
	sub.Status = model.SubmissionStatusPending
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	m.Created = sub
	return nil
}

func (m *SubmissionRepo) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Record == nil || m.Record.ID != id {
		return nil, port.ErrNotFound
	}
	return m.Record, nil
}

func (m *SubmissionRepo) GetByExternalID(ctx context.Context, source, externalID string) (*model.Submission, error) {
	if m.GetByExternalErr != nil {
		return nil, m.GetByExternalErr
	}
	if m.ByExternalID == nil {
		return nil, port.ErrNotFound
	}
	return m.ByExternalID, nil
}

func (m *SubmissionRepo) ListByStatus(ctx context.Context, status string) ([]model.Submission, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *SubmissionRepo) Decide(ctx context.Context, id int64, outcome, decidedBy string, decidedAt time.Time) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecideCalled = true
	m.DecideCount++
	m.DecidedID = id
	m.Outcome = outcome
	if m.DecideErr != nil {
		return nil, m.DecideErr
	}
	if m.Record == nil || m.Record.ID != id {
		return nil, port.ErrNotFound
	}
	if m.Record.Status != model.SubmissionStatusPending {
		return nil, port.ErrAlreadyDecided
	}
	switch outcome {
	case model.OutcomeApprove:
		m.Record.Status = model.SubmissionStatusPublished
	case model.OutcomeReject:
		m.Record.Status = model.SubmissionStatusRejected
	}
	m.Record.DecidedBy = &decidedBy
	m.Record.DecidedAt = &decidedAt
	return m.Record, nil
}

func (m *SubmissionRepo) ListReferencing(ctx context.Context, objectKey string) ([]model.Submission, error) {
	m.ListRefCalled = true
	if m.ListRefErr != nil {
		return nil, m.ListRefErr
	}
	return m.Referencing, nil
}

func (m *SubmissionRepo) StripMediaKey(ctx context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StripCalled = true
	m.StrippedKey = objectKey
	if m.StripErr != nil {
		return m.StripErr
	}
	for i := range m.Referencing {
		m.Referencing[i].MediaKeys = m.Referencing[i].MediaKeys.Without(objectKey)
	}
	if m.Record != nil {
		m.Record.MediaKeys = m.Record.MediaKeys.Without(objectKey)
	}
	return nil
}
