package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"anganwadi/config"
	"anganwadi/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult describes a stored image: the public URL handed to
// clients and the public id used for later deletion.
type UploadResult struct {
	URL      string
	PublicID string
}

// MinioStore is the MinIO-backed image host. Uploaded objects are named
// <folder>/<uuid><ext>; the public id is the same key without the
// extension, which is also what the last URL segment minus its extension
// resolves back to.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioStore creates the MinIO client and ensures the bucket exists
// with anonymous read access, so uploaded image URLs resolve publicly.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created MinIO bucket", logger.String("bucket", cfg.MinioBucket))
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, cfg.MinioBucket)
	if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, policy); err != nil {
		// The bucket may be provisioned with a policy we cannot change.
		logger.Warn("Failed to set public-read bucket policy",
			logger.String("bucket", cfg.MinioBucket),
			logger.ErrorField(err))
	}

	return &MinioStore{
		client:   client,
		bucket:   cfg.MinioBucket,
		endpoint: cfg.MinioEndpoint,
		useSSL:   cfg.MinioUseSSL,
	}, nil
}

// Upload stores the image bytes under the given folder and returns its
// public URL and public id.
func (s *MinioStore) Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := folder + "/" + uuid.New().String() + ext

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return &UploadResult{
		URL:      s.publicURL(key),
		PublicID: strings.TrimSuffix(key, path.Ext(key)),
	}, nil
}

// Delete removes every object matching the public id. Object keys carry
// a file extension while public ids do not, so deletion goes through a
// prefix listing.
func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	found := false
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix: publicID,
	}) {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects for %s: %w", publicID, object.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove object %s: %w", object.Key, err)
		}
		found = true
	}

	if !found {
		logger.Warn("No stored object matched public id", logger.String("publicId", publicID))
	}
	return nil
}

func (s *MinioStore) publicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
