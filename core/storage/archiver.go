package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Archiver stores run inputs and reports under <prefix>/<run-id>/.
type Archiver struct {
	client Client
	bucket string
	prefix string
}

// NewArchiver creates an archiver writing to bucket.
func NewArchiver(client Client, cfg Config) *Archiver {
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
}

// Bucket returns the target bucket.
func (a *Archiver) Bucket() string {
	return a.bucket
}

// BucketExists reports whether the target bucket exists.
func (a *Archiver) BucketExists(ctx context.Context) (bool, error) {
	return a.client.BucketExists(ctx, a.bucket)
}

// EnsureBucket creates the bucket when it does not exist.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// RunKey returns the object key of name inside the folder of runID.
func (a *Archiver) RunKey(runID, name string) string {
	return path.Join(a.prefix, runID, path.Base(name))
}

// PutRunFile uploads data as name in the folder of runID and returns its key.
func (a *Archiver) PutRunFile(ctx context.Context, runID, name string, data []byte, contentType string) (string, error) {
	key := a.RunKey(runID, name)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// ListRunFiles returns the keys stored for runID.
func (a *Archiver) ListRunFiles(ctx context.Context, runID string) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    path.Join(a.prefix, runID) + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return keys, fmt.Errorf("list run %s: %w", runID, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Fetch downloads the object stored under key.
func (a *Archiver) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}
