package port

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/model"
)

// SubmissionRepository defines persistence operations for submissions.
// Create and Decide are transactional with respect to the media references
// bound to the submission.
type SubmissionRepository interface {
	// Create inserts the submission in state pending and attaches its media
	// references to it, all in one transaction. The generated id and
	// submitted_at are written back to the given struct.
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	GetByExternalID(ctx context.Context, source, externalID string) (*model.Submission, error)
	// ListByStatus returns submissions in the given state ordered by
	// submitted_at ascending.
	ListByStatus(ctx context.Context, status string) ([]model.Submission, error)
	// Decide flips a pending submission to the terminal state matching the
	// outcome via compare-and-set; on approve it relabels the submission's
	// media references to post ownership in the same transaction. Returns
	// ErrNotFound for an unknown id and ErrAlreadyDecided when the row is
	// no longer pending.
	Decide(ctx context.Context, id int64, outcome, decidedBy string, decidedAt time.Time) (*model.Submission, error)
	// ListReferencing returns all submissions whose media list contains the
	// given object key.
	ListReferencing(ctx context.Context, objectKey string) ([]model.Submission, error)
	// StripMediaKey removes the object key from the media list of every
	// submission referencing it.
	StripMediaKey(ctx context.Context, objectKey string) error
}

// MediaReferenceRepository defines persistence operations for media references.
type MediaReferenceRepository interface {
	Create(ctx context.Context, ref *model.MediaReference) error
	// GetByKey returns ErrRefNotFound when no reference exists for the key.
	GetByKey(ctx context.Context, objectKey string) (*model.MediaReference, error)
	// Delete is a no-op success for an unknown key.
	Delete(ctx context.Context, objectKey string) error
}
