package imagestore

import "errors"

var (
	// Validation errors
	ErrEmptyImage          = errors.New("image data is empty")
	ErrUnsupportedMIMEType = errors.New("unsupported image MIME type")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// S3 errors, classified for callers
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrUploadFailed       = errors.New("failed to upload image")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
