package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hireloop/screenline/pkg/fsx"
)

// S3FileSystem implements fsx.BucketFileSystem on top of AWS S3.
type S3FileSystem struct {
	client     *s3.Client
	bucket     string
	basePrefix string
}

// NewS3FileSystem creates an S3-backed file system rooted at bucket/basePrefix.
func NewS3FileSystem(client *s3.Client, bucket, basePrefix string) *S3FileSystem {
	return &S3FileSystem{
		client:     client,
		bucket:     bucket,
		basePrefix: strings.Trim(basePrefix, "/"),
	}
}

// DefaultBucket returns the bucket new objects are written to.
func (f *S3FileSystem) DefaultBucket() string {
	return f.bucket
}

// Join builds an S3 key from segments.
func (f *S3FileSystem) Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

// ReadFile reads an object from the default bucket under the base prefix.
func (f *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f.ReadFileFromBucket(ctx, f.bucket, f.withPrefix(path))
}

// ReadFileFromBucket reads an object from an explicit bucket with the key as-is.
func (f *S3FileSystem) ReadFileFromBucket(ctx context.Context, bucket, path string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fsx.ErrNotFound
		}
		return nil, fmt.Errorf("get s3 object %s/%s: %w", bucket, path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s/%s: %w", bucket, path, err)
	}
	return data, nil
}

// WriteFile stores data at path in the default bucket and returns the full
// object key, base prefix included.
func (f *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) (string, error) {
	return f.WriteFileStream(ctx, path, bytes.NewReader(data))
}

// WriteFileStream stores streamed contents at path in the default bucket and
// returns the full object key, base prefix included.
func (f *S3FileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) (string, error) {
	key := f.withPrefix(path)
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return key, nil
}

// DeleteFile removes the object at path in the default bucket.
func (f *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.withPrefix(path)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete s3 object %s: %w", path, err)
	}
	return nil
}

func (f *S3FileSystem) withPrefix(path string) string {
	path = strings.TrimLeft(path, "/")
	if f.basePrefix == "" {
		return path
	}
	return f.basePrefix + "/" + path
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
