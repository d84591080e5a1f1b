// Package blob implements the resource image gateway over any
// S3-compatible object store (MinIO, AWS S3).
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"backroom/internal/core/apperror"
	"backroom/internal/domain/resource"
)

// Compile-time check that Gateway implements the domain contract.
var _ resource.BlobGateway = (*Gateway)(nil)

const contentTypeJPEG = "image/jpeg"

// Config holds object store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// PublicBaseURL is the address clients fetch images from.
	// Defaults to the endpoint with the matching scheme.
	PublicBaseURL string
}

// Gateway stores resource images in S3-compatible buckets.
type Gateway struct {
	client     *minio.Client
	publicBase string

	// now is injectable for deterministic freshness tokens in tests
	now func() time.Time
}

// New creates a Gateway connected to the configured object store.
func New(cfg Config) (*Gateway, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + cfg.Endpoint
	}

	return &Gateway{
		client:     client,
		publicBase: strings.TrimRight(publicBase, "/"),
		now:        time.Now,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
// Called once at startup per resource kind.
func (g *Gateway) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := g.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := g.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// Upload writes data under bucket/objectName, overwriting any existing
// object, and returns the public URL with a freshness token.
func (g *Gateway) Upload(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
	_, err := g.client.PutObject(ctx, bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeJPEG},
	)
	if err != nil {
		return "", apperror.NewUploadFailed(err).
			WithDetail("bucket", bucket).
			WithDetail("object", objectName)
	}

	return g.URL(bucket, objectName), nil
}

// URL returns the public URL for an object. The t query parameter
// changes on every call, so clients re-fetch after an overwrite instead
// of serving the cached bytes.
func (g *Gateway) URL(bucket, objectName string) string {
	token := strconv.FormatInt(g.now().UnixMilli(), 10)
	return g.publicBase + "/" + bucket + "/" + objectName + "?t=" + token
}

// Delete removes the object the URL points to. A missing object is
// success: compensations and retried deletes stay idempotent.
func (g *Gateway) Delete(ctx context.Context, bucket, imageURL string) error {
	objectName, err := ObjectNameFromURL(imageURL)
	if err != nil {
		return err
	}

	err = g.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return apperror.NewDeleteFailed(err).
			WithDetail("bucket", bucket).
			WithDetail("object", objectName)
	}

	return nil
}

// ObjectNameFromURL extracts the object name from a stored image URL:
// the last path segment with the query string stripped.
func ObjectNameFromURL(imageURL string) (string, error) {
	withoutQuery, _, _ := strings.Cut(imageURL, "?")
	name := withoutQuery[strings.LastIndexByte(withoutQuery, '/')+1:]
	if name == "" {
		return "", apperror.NewValidation("image url has no object name").
			WithDetail("url", imageURL)
	}
	return name, nil
}
