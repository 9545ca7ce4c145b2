package port

import "errors"

// Storage-boundary errors, mapped from blob store response codes.
var (
	ErrObjectNotFound      = errors.New("storage: object not found")
	ErrBucketNotFound      = errors.New("storage: bucket not found")
	ErrStorageUnauthorized = errors.New("storage: unauthorized")
	ErrUpstreamUnavailable = errors.New("storage: upstream unavailable")
)

// Validation errors: terminal, never retried.
var (
	ErrInvalidMediaType = errors.New("media type not allowed for this purpose")
	ErrPayloadTooLarge  = errors.New("declared size exceeds the allowed maximum")
)

// Authorization errors.
var (
	ErrForbidden = errors.New("requester does not own this resource")
)

// Conflict errors: the caller's view was stale; re-fetch and retry explicitly.
var (
	ErrDuplicateReference  = errors.New("object key already registered to another owner")
	ErrDuplicateSubmission = errors.New("a submission with this external id already exists")
	ErrAlreadyDecided      = errors.New("submission already decided")
	ErrInUse               = errors.New("media is referenced by a published submission")
	ErrUnownedMedia        = errors.New("media key is not owned by the author")
)

// Not-found errors.
var (
	ErrNotFound    = errors.New("submission not found")
	ErrRefNotFound = errors.New("media reference not found")
)
