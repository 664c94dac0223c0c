package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client defines the S3 operations used by S3Store.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config contains configuration for the S3 backend.
type S3Config struct {
	Bucket         string `env:"IMAGE_S3_BUCKET"`
	Region         string `env:"IMAGE_S3_REGION"`
	AccessKeyID    string `env:"IMAGE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"IMAGE_S3_SECRET_KEY"`
	Endpoint       string `env:"IMAGE_S3_ENDPOINT"`         // Optional: for S3-compatible services
	BaseURL        string `env:"IMAGE_S3_BASE_URL"`         // Public URL base for serving images
	KeyPrefix      string `env:"IMAGE_S3_KEY_PREFIX" envDefault:"characters/"`
	ForcePathStyle bool   `env:"IMAGE_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
}

// S3Store implements Store for Amazon S3 and S3-compatible services.
// It is safe for concurrent use.
type S3Store struct {
	client        S3Client
	bucket        string
	baseURL       string
	keyPrefix     string
	uploadTimeout time.Duration
}

// S3Option configures S3Store construction.
type S3Option func(*s3Options)

type s3Options struct {
	s3Client      S3Client
	uploadTimeout time.Duration
}

// WithS3Client sets a custom pre-configured S3 client. Useful for testing.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithUploadTimeout bounds a single upload. Zero leaves the caller's context
// deadline in charge.
func WithUploadTimeout(d time.Duration) S3Option {
	return func(o *s3Options) {
		o.uploadTimeout = d
	}
}

// NewS3Store creates an S3-backed image store.
func NewS3Store(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID, cfg.SecretKey, "",
				)),
			)
		}

		awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	baseURL = strings.TrimSuffix(baseURL, "/") + "/"

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		baseURL:       baseURL,
		keyPrefix:     cfg.KeyPrefix,
		uploadTimeout: options.uploadTimeout,
	}, nil
}

// Put uploads the image and returns its key and public URL.
func (s *S3Store) Put(ctx context.Context, obj Object) (Stored, error) {
	if err := validate(obj); err != nil {
		return Stored{}, err
	}

	key, err := newKey(obj.MIMEType)
	if err != nil {
		return Stored{}, err
	}
	key = s.keyPrefix + key

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.MIMEType),
	})
	if err != nil {
		return Stored{}, classifyS3Error(err)
	}

	return Stored{Key: key, URL: s.baseURL + key}, nil
}

// classifyS3Error converts S3 errors to domain-specific errors.
func classifyS3Error(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: upload", ErrOperationTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: upload", ErrOperationCanceled)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return fmt.Errorf("%w: upload", ErrAccessDenied)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: upload", ErrServiceUnavailable)
		default:
			return fmt.Errorf("%w (code: %s): %w", ErrUploadFailed, apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("%w: %w", ErrUploadFailed, err)
}
