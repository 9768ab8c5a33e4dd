package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3ObjectStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string

	logger *logger.Logger
}

// NewS3ObjectStorage builds an [ObjectStorage] on an S3-compatible bucket.
// When cfg.Endpoint is set (MinIO, localstack) path-style addressing is used.
func NewS3ObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger) (ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrInvalidAdapterCfg)
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3ObjectStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: objectBaseURL(cfg),
		logger:    log,
	}, nil
}

func (s *s3ObjectStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		log.Err(err).Str("func", "*s3ObjectStorage.Upload").Str("key", key).Msg("error uploading object")
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *s3ObjectStorage) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Err(err).Str("func", "*s3ObjectStorage.Delete").Str("key", key).Msg("error deleting object")
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

func (s *s3ObjectStorage) objectURL(key string) string {
	return s.publicURL + "/" + (&url.URL{Path: key}).EscapedPath()
}

// objectBaseURL resolves the prefix of retrieval URLs: the configured public
// URL, the custom endpoint with the bucket in the path, or the virtual-hosted
// AWS address.
func objectBaseURL(cfg config.Objects) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}
