// Package storage provides the blob store used for notice attachments,
// backed by any S3-compatible service (AWS S3 or MinIO).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/examboard/portal-api/internal/core/domain"
)

// Config captures the settings for the S3-compatible endpoint.
type Config struct {
	Endpoint      string // empty for AWS proper, the MinIO URL otherwise
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // prefix under which uploaded objects are served
}

// S3Store uploads blobs and returns their public URLs.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3 client with static credentials and an optional
// custom endpoint (MinIO).
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Upload writes data under a date-partitioned random key and returns the
// public URL of the object.
func (s *S3Store) Upload(ctx context.Context, data []byte, folder, contentType string) (string, error) {
	key := objectKey(folder)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", domain.ErrUpstream, err)
	}

	publicURL, err := url.JoinPath(s.publicBaseURL, key)
	if err != nil {
		return "", fmt.Errorf("build object url: %w", err)
	}
	return publicURL, nil
}

// objectKey produces keys like notices/2026/08/30/<uuid>.
func objectKey(folder string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s", folder, d.Year(), d.Month(), d.Day(), uuid.NewString())
}
