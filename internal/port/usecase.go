package port

import (
	"context"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/model"
)

// GrantIssuer mints scoped, time-limited upload grants.
type GrantIssuer interface {
	IssueUploadGrant(ctx context.Context, in IssueUploadGrantInput) (IssueUploadGrantOutput, error)
}
type IssueUploadGrantInput struct {
	Purpose     string
	Requester   string
	ContentType string
	SizeBytes   int64
}
type IssueUploadGrantOutput struct {
	ObjectKey   string    `json:"object_key"`
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	MaxSize     int64     `json:"max_size"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ReferenceRegistrar records a media reference for a completed upload.
type ReferenceRegistrar interface {
	RegisterReference(ctx context.Context, in RegisterReferenceInput) (*model.MediaReference, error)
}
type RegisterReferenceInput struct {
	ObjectKey string
	Owner     string
	Kind      string
}

// ReferenceLookup resolves an object key to its reference, if any.
type ReferenceLookup interface {
	Lookup(ctx context.Context, objectKey string) (*model.MediaReference, error)
}

// ReferenceDetacher removes a media reference. Idempotent.
type ReferenceDetacher interface {
	Detach(ctx context.Context, objectKey string) error
}

// Submitter accepts a new submission into the pending queue.
type Submitter interface {
	Submit(ctx context.Context, in SubmitInput) (*model.Submission, error)
}
type SubmitInput struct {
	Author           string
	Body             string
	MediaKeys        []string
	Source           string
	ExternalID       string
	ExternalUsername string
}

// PendingLister returns the current pending queue.
type PendingLister interface {
	ListPending(ctx context.Context) ([]model.Submission, error)
}

// Decider promotes or discards a pending submission.
type Decider interface {
	Decide(ctx context.Context, in DecideInput) (*model.Submission, error)
}
type DecideInput struct {
	ID        int64
	Outcome   string
	DecidedBy string
}

// MediaDeleter removes a media object and reconciles its references.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, in DeleteMediaInput) error
}
type DeleteMediaInput struct {
	ObjectKey   string
	RequestedBy string
	Roles       []string
	Force       bool
}

// OrphanReaper deletes blob objects that no media reference points at.
type OrphanReaper interface {
	ReapOrphans(ctx context.Context, olderThan time.Duration) (int, error)
}
