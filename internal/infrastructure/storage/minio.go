// Package storage provides MinIO-backed storage for uploaded branding
// assets (the site logo). The public URL of an uploaded object is written
// into the remote settings record.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/shindora/nesubtv/internal/domain/repository"
)

// minioClient defines the MinIO operations the logo store needs.
// This abstraction allows for easier unit testing with mocks.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ClientConfig holds configuration for the MinIO client.
type ClientConfig struct {
	Endpoint string
	// PublicBaseURL is the external-facing URL prefix objects are served
	// from, e.g. "https://cdn.example.com/branding".
	PublicBaseURL string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
}

// Client wraps a MinIO client and implements repository.LogoStorage.
type Client struct {
	client        minioClient
	bucket        string
	publicBaseURL string
}

// NewClient creates a new MinIO logo store. It verifies the bucket exists
// during initialization to fail fast on misconfiguration.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	client := &Client{
		client:        mc,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}

	exists, err := client.client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return client, nil
}

// UploadLogo stores the object and returns its public URL.
func (c *Client) UploadLogo(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, c.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}
	return c.publicBaseURL + "/" + name, nil
}

// Compile-time verification that Client implements repository.LogoStorage.
var _ repository.LogoStorage = (*Client)(nil)
