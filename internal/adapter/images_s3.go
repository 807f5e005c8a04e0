package adapter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
)

// uploaderAPI is the subset of *manager.Uploader used by s3ImageStorage.
type uploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type s3ImageStorage struct {
	uploader uploaderAPI
	bucket   string
	region   string
	endpoint string
	logger   *logger.Logger
}

// NewImageStorage returns an S3-backed [ImageStorage]. When cfg.Bucket is
// empty the returned storage rejects every upload with
// [ErrImageStorageDisabled].
//
// A non-empty cfg.Endpoint points the client at an S3-compatible server
// (path-style addressing); static credentials are used when
// cfg.AccessKey is set, the default AWS chain otherwise.
func NewImageStorage(ctx context.Context, cfg config.Images, log *logger.Logger) (ImageStorage, error) {
	if cfg.Bucket == "" {
		log.Info().Str("func", "NewImageStorage").Msg("images bucket not set, image upload disabled")
		return disabledImageStorage{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewImageStorage").Msg("failed to load AWS SDK config for S3")
		return nil, fmt.Errorf("failed to load AWS SDK config for S3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	log.Info().Str("func", "NewImageStorage").Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("S3 image storage initialized")

	return &s3ImageStorage{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		logger:   log,
	}, nil
}

func (s *s3ImageStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*s3ImageStorage.Upload").Str("key", key).Msg("failed to upload image")
		return "", fmt.Errorf("failed to upload file to S3 (bucket: %s, key: %s): %w", s.bucket, key, err)
	}

	if out != nil && out.Location != "" {
		return out.Location, nil
	}
	return s.objectURL(key), nil
}

// objectURL builds the public URL of key when the uploader did not report one.
func (s *s3ImageStorage) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

type disabledImageStorage struct{}

func (disabledImageStorage) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrImageStorageDisabled
}
