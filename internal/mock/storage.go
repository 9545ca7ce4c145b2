package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut  port.FileInfo
	GetOut       io.ReadSeeker
	ExistsOut    bool
	ListOut      []port.ObjectInfo
	ListByPrefix map[string][]port.ObjectInfo
	UploadURL    string

	// captured inputs
	Bucket    string
	ObjectKey string
	TTL       time.Duration
	Prefix    string

	// errors
	InitBucketErr         error
	GenerateUploadLinkErr error
	StatErr               error
	RemoveErr             error
	GetErr                error
	FileExistsErr         error
	ListErr               error

	// call flags
	InitBucketCalled         bool
	GenerateUploadLinkCalled bool
	StatCalled               bool
	RemoveCalled             bool
	GetCalled                bool
	FileExistsCalled         bool
	ListCalled               bool

	RemovedKeys []string
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedUploadURL(ctx context.Context, bucket, objectKey string, expiry time.Duration) (string, error) {
	m.GenerateUploadLinkCalled = true
	m.Bucket = bucket
	m.ObjectKey = objectKey
	m.TTL = expiry
	if m.GenerateUploadLinkErr != nil {
		return "", m.GenerateUploadLinkErr
	}
	if m.UploadURL != "" {
		return m.UploadURL, nil
	}
	return "https://example.com/upload", nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, objectKey string) (bool, error) {
	m.FileExistsCalled = true
	m.Bucket = bucket
	m.ObjectKey = objectKey
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, objectKey string) (port.FileInfo, error) {
	m.StatCalled = true
	m.ObjectKey = objectKey
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) GetFile(ctx context.Context, bucket, objectKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.ObjectKey = objectKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return noopRSC{m.GetOut}, nil
	}
	return noopRSC{bytes.NewReader([]byte("dummy"))}, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, objectKey string) error {
	m.RemoveCalled = true
	m.ObjectKey = objectKey
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.RemovedKeys = append(m.RemovedKeys, objectKey)
	return nil
}

func (m *Storage) ListFiles(ctx context.Context, bucket, prefix string) ([]port.ObjectInfo, error) {
	m.ListCalled = true
	m.Prefix = prefix
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if m.ListByPrefix != nil {
		return m.ListByPrefix[prefix], nil
	}
	return m.ListOut, nil
}

func (m *Storage) PublicURL(bucket, objectKey string) string {
	return "https://cdn.example.com/" + bucket + "/" + objectKey
}

type noopRSC struct{ io.ReadSeeker }

func (noopRSC) Close() error { return nil }
