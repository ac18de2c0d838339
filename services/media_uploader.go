package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaUploader stores uploaded media and returns a publicly addressable URL.
type MediaUploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, key string) (string, error)
}

// MediaKey builds the object key for an upload:
// {entityType}/{parentID}/{uuid}_{originalFileName}. Consumers parse this
// layout out of stored URLs, so the format is load-bearing.
func MediaKey(entityType, parentID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s_%s", entityType, parentID, uuid.New().String(), fileName)
}

// MinioUploader implements MediaUploader on MinIO/S3-compatible storage.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioUploader connects to the object store and ensures the media bucket
// exists. baseURL is the public prefix media is served from; when empty the
// endpoint itself is used.
func NewMinioUploader(endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	if baseURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + endpoint
	}
	return &MinioUploader{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// Upload stores the blob under the given key and returns its public URL.
// No content-type validation or size limit is applied here.
func (m *MinioUploader) Upload(ctx context.Context, r io.Reader, size int64, contentType, key string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return PublicMediaURL(m.baseURL, m.bucket, key), nil
}

// PublicMediaURL builds {base}/{bucket}/{key} with the key percent-encoded
// per path segment.
func PublicMediaURL(baseURL, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, strings.Join(segments, "/"))
}
