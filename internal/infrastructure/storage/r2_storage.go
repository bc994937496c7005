package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	infraconfig "github.com/secondhandshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// defaultUploadExpiry applies when a caller passes a non-positive expiry
const defaultUploadExpiry = 5 * time.Minute

// Ensure R2ObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*R2ObjectStorage)(nil)

// R2ObjectStorage implements object storage on Cloudflare R2 using the AWS S3 SDK v2.
type R2ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	workerBaseURL     string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// R2ObjectStorageOption is a functional option for configuring R2ObjectStorage
type R2ObjectStorageOption func(*R2ObjectStorage)

// WithLogger sets a custom logger for R2ObjectStorage
func WithLogger(logger *zap.Logger) R2ObjectStorageOption {
	return func(s *R2ObjectStorage) {
		s.logger = logger
	}
}

// WithPresignExpiration sets the expiry used by GenerateDownloadURL when none is given
func WithPresignExpiration(d time.Duration) R2ObjectStorageOption {
	return func(s *R2ObjectStorage) {
		s.presignExpiration = d
	}
}

// NewR2ObjectStorage creates a new R2ObjectStorage from configuration.
func NewR2ObjectStorage(cfg *infraconfig.R2Config, opts ...R2ObjectStorageOption) (*R2ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("r2 configuration is required")
	}
	if cfg.BucketName == "" {
		return nil, errors.New("r2 bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("r2 access key id and secret access key are required")
	}
	if cfg.AccountID == "" && cfg.Endpoint == "" {
		return nil, errors.New("r2 account id or endpoint is required")
	}

	endpoint := cfg.EndpointURL()
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid r2 endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
		// R2 rejects the flexible checksum headers newer SDKs send by default.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	storage := &R2ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.BucketName,
		workerBaseURL:     cfg.WorkerBaseURL,
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	if storage.presignExpiration <= 0 {
		storage.presignExpiration = 10 * time.Minute
	}
	return storage, nil
}

// GenerateUploadURL generates a presigned PUT URL bound to contentType.
// A non-positive expiresIn means five minutes.
func (s *R2ObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = defaultUploadExpiry
	}

	presignReq, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return presignReq.URL, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL generates a presigned GET URL
func (s *R2ObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	presignReq, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return presignReq.URL, time.Now().Add(expiresIn), nil
}

// DeleteObject deletes an object. Deleting a missing key succeeds.
func (s *R2ObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	s.logger.Debug("Object deleted", zap.String("key", storageKey))
	return nil
}

// ObjectExists checks if an object exists
func (s *R2ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	_, err := s.HeadObject(ctx, storageKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HeadObject returns object metadata without the body
func (s *R2ObjectStorage) HeadObject(ctx context.Context, storageKey string) (*ObjectInfo, error) {
	if storageKey == "" {
		return nil, ErrEmptyKey
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to head object: %w", err)
	}
	return &ObjectInfo{
		Key:                storageKey,
		ContentType:        aws.ToString(out.ContentType),
		ContentLength:      aws.ToInt64(out.ContentLength),
		ETag:               normalizeETag(aws.ToString(out.ETag)),
		ContentDisposition: aws.ToString(out.ContentDisposition),
		LastModified:       out.LastModified,
	}, nil
}

// GetObject opens an object for streaming. The caller must close the body.
func (s *R2ObjectStorage) GetObject(ctx context.Context, storageKey string) (*Object, error) {
	if storageKey == "" {
		return nil, ErrEmptyKey
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return &Object{
		ObjectInfo: ObjectInfo{
			Key:                storageKey,
			ContentType:        aws.ToString(out.ContentType),
			ContentLength:      aws.ToInt64(out.ContentLength),
			ETag:               normalizeETag(aws.ToString(out.ETag)),
			ContentDisposition: aws.ToString(out.ContentDisposition),
			LastModified:       out.LastModified,
		},
		Body: out.Body,
	}, nil
}

// Upload writes data directly to storage. Browser uploads go through
// GenerateUploadURL instead.
func (s *R2ObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(storageKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// BuildDisplayURL returns the image proxy URL for storageKey
func (s *R2ObjectStorage) BuildDisplayURL(storageKey string) string {
	return buildDisplayURL(s.workerBaseURL, storageKey)
}

// GetBucket returns the bucket name
func (s *R2ObjectStorage) GetBucket() string {
	return s.bucket
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
