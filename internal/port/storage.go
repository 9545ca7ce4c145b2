package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// ObjectInfo describes an object listed from a bucket.
type ObjectInfo struct {
	Key          string
	SizeBytes    int64
	LastModified time.Time
}

// Storage defines blob store operations.
type Storage interface {
	InitBucket(bucket string) error
	GeneratePresignedUploadURL(ctx context.Context, bucket, objectKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, objectKey string) (bool, error)
	StatFile(ctx context.Context, bucket, objectKey string) (FileInfo, error)
	GetFile(ctx context.Context, bucket, objectKey string) (io.ReadSeekCloser, error)
	// RemoveFile is idempotent: removing a missing object succeeds.
	RemoveFile(ctx context.Context, bucket, objectKey string) error
	ListFiles(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	PublicURL(bucket, objectKey string) string
}
