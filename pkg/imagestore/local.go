package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig contains configuration for the filesystem backend.
type LocalConfig struct {
	Dir     string `env:"IMAGE_LOCAL_DIR" envDefault:"./uploads"`
	BaseURL string `env:"IMAGE_LOCAL_BASE_URL" envDefault:"http://localhost:8080/uploads"`
}

// LocalStore implements Store on the local filesystem. Intended for
// development; production uses S3Store.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a filesystem-backed image store rooted at cfg.Dir,
// creating the directory when needed.
func NewLocalStore(cfg LocalConfig) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, ErrInvalidConfig
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &LocalStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
	}, nil
}

// Put writes the image under the store directory.
func (l *LocalStore) Put(ctx context.Context, obj Object) (Stored, error) {
	if err := validate(obj); err != nil {
		return Stored{}, err
	}

	key, err := newKey(obj.MIMEType)
	if err != nil {
		return Stored{}, err
	}

	if err := ctx.Err(); err != nil {
		return Stored{}, fmt.Errorf("%w: %w", ErrOperationCanceled, err)
	}

	if err := os.WriteFile(filepath.Join(l.dir, key), obj.Data, 0o644); err != nil {
		return Stored{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return Stored{Key: key, URL: l.baseURL + key}, nil
}
