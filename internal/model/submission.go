package model

import "time"

const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusPublished = "published"
	SubmissionStatusRejected  = "rejected"
)

const (
	OutcomeApprove = "approve"
	OutcomeReject  = "reject"
)

// Submission is a bot/user-authored post awaiting or having received a
// moderation decision. Once published or rejected it is immutable except
// for media stripping on forced deletion.
type Submission struct {
	ID               int64      `json:"id"`
	Author           string     `json:"author"`
	Body             string     `json:"body"`
	MediaKeys        MediaKeys  `json:"media_keys"`
	Source           string     `json:"source"`
	ExternalID       string     `json:"external_id"`
	ExternalUsername string     `json:"external_username"`
	Status           string     `json:"status"`
	DecidedBy        *string    `json:"decided_by,omitempty"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
}

// IsDecided reports whether the submission reached a terminal state.
func (s *Submission) IsDecided() bool {
	return s.Status != SubmissionStatusPending
}
