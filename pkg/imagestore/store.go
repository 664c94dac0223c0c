package imagestore

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Object is an image ready for upload.
type Object struct {
	Data     []byte
	MIMEType string
}

// Stored describes a successfully uploaded image.
type Stored struct {
	Key string // backend object key, opaque to callers
	URL string // public URL
}

// Store uploads images. Implementations must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, obj Object) (Stored, error)
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
	"image/heic": "heic",
}

// newKey builds a unique object key from the MIME type, mirroring the
// char_<id>.<ext> naming of the relay this replaces.
func newKey(mimeType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(mimeType))]
	if !ok {
		return "", ErrUnsupportedMIMEType
	}
	return "char_" + uuid.NewString() + "." + ext, nil
}

func validate(obj Object) error {
	if len(obj.Data) == 0 {
		return ErrEmptyImage
	}
	return nil
}
