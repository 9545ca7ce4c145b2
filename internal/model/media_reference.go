package model

import (
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/db"
)

const (
	ReferenceKindPost   = "post"
	ReferenceKindAvatar = "avatar"
)

// Record types a reference can be attached to. "none" means the object was
// registered but no submission claimed it yet.
const (
	RecordTypeNone       = "none"
	RecordTypeSubmission = "submission"
	RecordTypePost       = "post"
	RecordTypeAvatar     = "avatar"
)

// MediaReference binds a blob-store object to the content entity that owns
// it. A reference may only be created for an object that already exists in
// the blob store.
type MediaReference struct {
	ID         db.UUID   `json:"id"`
	ObjectKey  string    `json:"object_key"`
	Owner      string    `json:"owner"`
	Kind       string    `json:"kind"`
	RecordType string    `json:"record_type"`
	RecordID   *int64    `json:"record_id,omitempty"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
