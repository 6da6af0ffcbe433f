package services

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type PosterUpload struct {
	ObjectKey    string    `json:"object_key" example:"films/1/poster_1a2b3c4d.jpg"`
	PresignedURL string    `json:"presigned_url"`
	PublicURL    string    `json:"public_url"`
	ContentType  string    `json:"content_type" example:"image/jpeg"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PosterStorage keeps film artwork in an object store under films/{id}/.
type PosterStorage interface {
	PresignUpload(ctx context.Context, filmID int64, filename, contentType string) (*PosterUpload, error)
	DeleteFilmPosters(ctx context.Context, filmID int64) error
}

type MinIOPosterStorage struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	expiry    time.Duration
	logger    *logrus.Logger
}

func NewMinIOPosterStorage(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOPosterStorage, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	storage := &MinIOPosterStorage{
		client:    client,
		bucket:    cfg.BucketName,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		expiry:    cfg.PresignExpiry,
		logger:    logger,
	}

	if err := storage.ensureBucket(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return storage, nil
}

func (s *MinIOPosterStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	return nil
}

func (s *MinIOPosterStorage) PresignUpload(ctx context.Context, filmID int64, filename, contentType string) (*PosterUpload, error) {
	objectKey := posterObjectKey(filmID, filename, uuid.NewString())

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, s.expiry)
	if err != nil {
		s.logger.WithError(err).WithField("objectKey", objectKey).Error("Failed to generate presigned URL")
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to generate presigned URL", err)
	}

	s.logger.WithFields(logrus.Fields{
		"film_id":   filmID,
		"objectKey": objectKey,
		"expiry":    s.expiry,
	}).Info("Generated presigned URL")

	return &PosterUpload{
		ObjectKey:    objectKey,
		PresignedURL: presignedURL.String(),
		PublicURL:    fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectKey),
		ContentType:  contentType,
		ExpiresAt:    time.Now().UTC().Add(s.expiry),
	}, nil
}

func (s *MinIOPosterStorage) DeleteFilmPosters(ctx context.Context, filmID int64) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    posterPrefix(filmID),
		Recursive: true,
	})

	removed := 0
	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list posters: %w", object.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to delete %s: %w", object.Key, err)
		}
		removed++
	}

	if removed > 0 {
		s.logger.WithFields(logrus.Fields{"film_id": filmID, "removed": removed}).Info("Film posters deleted")
	}
	return nil
}

func posterPrefix(filmID int64) string {
	return fmt.Sprintf("films/%d/", filmID)
}

// posterObjectKey builds films/{id}/{name}_{suffix[:8]}{ext} from a client
// supplied filename, dropping any directory components it carries.
func posterObjectKey(filmID int64, filename, suffix string) string {
	base := path.Base(filepath.ToSlash(strings.TrimSpace(filename)))
	if base == "." || base == "/" || base == "" {
		base = "poster"
	}
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		name = "poster"
	}
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s%s_%s%s", posterPrefix(filmID), name, suffix, strings.ToLower(ext))
}
