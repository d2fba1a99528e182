package s3storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"bio_showcase/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Config describes an S3-compatible bucket (AWS, R2, MinIO).
type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURL is the CDN or public bucket origin used in returned URLs.
	PublicURL string
}

type Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func New(ctx context.Context, cfg Config) (*Storage, error) {
	const op = "storage.s3storage.New"

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: bucket is required", op)
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" && cfg.Endpoint != "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

func (s *Storage) Name() string { return "s3" }

// Put uploads r under key. The body is buffered since the SDK needs a
// seekable reader to sign the payload.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, int64, error) {
	const op = "storage.s3storage.Put"

	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	key = strings.TrimLeft(key, "/")
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	return s.URL(key), int64(len(data)), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "storage.s3storage.Delete"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimLeft(key, "/")),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) URL(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
