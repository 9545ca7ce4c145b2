package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type MinioStorage struct {
	client        minioClient
	publicBaseURL string
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewStorage(endpoint, accessKey, secretKey string, useSSL bool, publicBaseURL string) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ok, err := s.client.BucketExists(context.Background(), bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) GeneratePresignedUploadURL(ctx context.Context, bucket, objectKey string, expiry time.Duration) (string, error) {
	log.Printf("generating a presigned upload link for object %q in bucket %q...", objectKey, bucket)

	presignedURL, err := s.client.PresignedPutObject(ctx, bucket, objectKey, expiry)
	if err != nil {
		return "", mapMinioErr(err)
	}

	return presignedURL.String(), nil
}

func (s *MinioStorage) FileExists(ctx context.Context, bucket, objectKey string) (bool, error) {
	log.Printf("checking if object %q exists in bucket %q...", objectKey, bucket)

	_, err := s.StatFile(ctx, bucket, objectKey)
	if errors.Is(err, port.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, bucket, objectKey string) (port.FileInfo, error) {
	log.Printf("getting stats on object %q in bucket %q...", objectKey, bucket)

	info, err := s.client.StatObject(ctx, bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) GetFile(ctx context.Context, bucket, objectKey string) (io.ReadSeekCloser, error) {
	log.Printf("getting object %q from bucket %q...", objectKey, bucket)

	obj, err := s.client.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return obj, nil
}

// RemoveFile deletes an object; removing a missing object is a success.
func (s *MinioStorage) RemoveFile(ctx context.Context, bucket, objectKey string) error {
	log.Printf("removing object %q from bucket %q...", objectKey, bucket)

	err := mapMinioErr(s.client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{}))
	if errors.Is(err, port.ErrObjectNotFound) {
		return nil
	}
	return err
}

func (s *MinioStorage) ListFiles(ctx context.Context, bucket, prefix string) ([]port.ObjectInfo, error) {
	log.Printf("listing objects under prefix %q in bucket %q...", prefix, bucket)

	var out []port.ObjectInfo
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, mapMinioErr(obj.Err)
		}
		out = append(out, port.ObjectInfo{
			Key:          obj.Key,
			SizeBytes:    obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

func (s *MinioStorage) PublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, objectKey)
}
