package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"elenco/internal/config"
)

type Storage interface {
	UploadMedia(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteMedia(ctx context.Context, url string) error
	Owns(url string) bool
}

type MinIOClient struct {
	client  *minio.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

var _ Storage = (*MinIOClient)(nil)

// NewMinIOClient connects and makes sure the media bucket exists.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.BucketName,
		baseURL: BaseURL(cfg),
		now:     time.Now,
	}, nil
}

// BaseURL is the public prefix objects are served under.
func BaseURL(cfg config.MinIO) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/") + "/" + cfg.BucketName
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.BucketName)
}

// ObjectName derives the storage path of a new upload.
func ObjectName(fileName, contentType string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			fileExt = exts[0]
		}
	}

	return fmt.Sprintf("posts/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), fileExt)
}

func (m *MinIOClient) UploadMedia(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := m.now()
	objectName := ObjectName(fileName, contentType, now)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return m.baseURL + "/" + objectName, nil
}

func (m *MinIOClient) Owns(url string) bool {
	return strings.HasPrefix(url, m.baseURL+"/")
}

func (m *MinIOClient) DeleteMedia(ctx context.Context, url string) error {
	if !m.Owns(url) {
		return fmt.Errorf("object %s is not in bucket %s", url, m.bucket)
	}
	objectName := strings.TrimPrefix(url, m.baseURL+"/")

	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}
