package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"movie-paradise/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStorage stores movie artwork uploaded straight from the browser
type ObjectStorage interface {
	// PresignUpload returns a PUT url for key and the public url the object will be served from
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (uploadURL, publicURL string, err error)
	// ObjectKey extracts the key from a public url, false when the url is not ours
	ObjectKey(publicURL string) (string, bool)
	Delete(ctx context.Context, key string) error
}

type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
	log        *zap.Logger
}

func NewMinIOStorage(ctx context.Context, cfg utils.MinIOConfig, log *zap.Logger) (*MinIOStorage, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &MinIOStorage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg, endpoint),
		log:        log.With(zap.String("storage", "minio")),
	}

	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		// uploads still work against an existing bucket we cannot configure
		s.log.Warn("Failed to configure bucket", zap.Error(err), zap.String("bucket", cfg.Bucket))
	}

	s.log.Info("MinIO storage ready",
		zap.String("endpoint", endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("ssl", cfg.UseSSL),
	)

	return s, nil
}

func publicBase(cfg utils.MinIOConfig, endpoint string) string {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		base = scheme + endpoint
	}
	return base + "/" + cfg.Bucket + "/"
}

func (s *MinIOStorage) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		s.log.Info("Bucket created", zap.String("bucket", s.bucket))
	}

	// artwork is public, anonymous read on objects only
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}

	return nil
}

func (s *MinIOStorage) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, string, error) {
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		s.log.Error("Failed to presign upload", zap.Error(err), zap.String("key", key))
		return "", "", fmt.Errorf("presign upload %s: %w", key, err)
	}

	s.log.Info("Presigned upload",
		zap.String("key", key),
		zap.Duration("expiry", expiry),
	)

	return presigned.String(), s.publicBase + key, nil
}

func (s *MinIOStorage) ObjectKey(publicURL string) (string, bool) {
	return objectKey(s.publicBase, publicURL)
}

func objectKey(base, publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	key, err := url.PathUnescape(key)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.log.Error("Failed to delete object", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	s.log.Info("Object deleted", zap.String("key", key))
	return nil
}
