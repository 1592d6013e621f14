// Package objectstore archives uploaded worksheet images in an S3-compatible
// bucket (MinIO in development).
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

// Archive stores worksheet images. The bucket is created on first use.
type Archive struct {
	client *minio.Client
	bucket string
	region string
	log    *slog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

// New creates an Archive. No network call is made until the first Put.
func New(cfg config.StorageConfig, logger *slog.Logger) (*Archive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		log:    logger.With("adapter", "objectstore", "bucket", cfg.Bucket),
	}, nil
}

// Put uploads img under key with its media type as content type.
func (a *Archive) Put(ctx context.Context, key string, img llm.Image) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	info, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)),
		minio.PutObjectOptions{ContentType: img.MediaType},
	)
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	a.log.DebugContext(ctx, "worksheet archived",
		slog.String("key", key),
		slog.String("etag", info.ETag),
		slog.Int("size", len(img.Data)),
	)
	return nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.ensureMu.Lock()
	defer a.ensureMu.Unlock()
	if a.bucketEnsured {
		return nil
	}

	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
		a.log.InfoContext(ctx, "created bucket")
	}

	a.bucketEnsured = true
	return nil
}
