package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
)

// BucketStats summarizes the contents of the image bucket.
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
}

// ObjectInfo describes a single stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// DescribeBucket walks the bucket once and returns aggregate stats.
// Used by the minio CLI subcommand for operator inspection.
func (s *MinioStore) DescribeBucket(ctx context.Context) (*BucketStats, error) {
	stats := &BucketStats{}

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.bucket, object.Err)
		}
		stats.TotalObjects++
		stats.TotalSize += object.Size
		if object.LastModified.After(stats.LastModified) {
			stats.LastModified = object.LastModified
		}
	}

	return stats, nil
}

// ListFolder returns the objects under the given prefix, newest first.
func (s *MinioStore) ListFolder(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list prefix %s: %w", prefix, object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	return objects, nil
}
