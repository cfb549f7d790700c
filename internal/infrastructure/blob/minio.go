package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioStorage is the blob store for listing images, backed by a single
// MinIO/S3 bucket. Object keys are "{listing_id}/{filename}".
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and ensures the bucket exists.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := client.BucketExists(context.Background(), bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", bucket, err)
		}
	}

	return &MinioStorage{client: client, bucket: bucket}, nil
}

// Upload stores data at path with the given content type and returns a durable
// access link of the form endpoint/bucket/path.
func (s *MinioStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s to bucket %s: %w", path, s.bucket, err)
	}
	log.Info().Str("bucket", info.Bucket).Str("key", info.Key).Int64("size", info.Size).Msg("Image uploaded")

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, path), nil
}

// SetPublic grants anonymous read on the uploaded object. MinIO has no
// per-object ACL, so this applies a bucket policy allowing GetObject under the
// bucket; repeated calls are idempotent.
func (s *MinioStorage) SetPublic(ctx context.Context, path string) error {
	policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, s.bucket)
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("set public-read policy for %s: %w", path, err)
	}
	return nil
}

// Delete removes the object at path. Removing an absent object is a no-op.
func (s *MinioStorage) Delete(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s from bucket %s: %w", path, s.bucket, err)
	}
	return nil
}
