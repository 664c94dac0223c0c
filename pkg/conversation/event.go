package conversation

import (
	"context"

	"github.com/oekaki/charabot/pkg/session"
)

// EventType distinguishes inbound event kinds.
type EventType string

const (
	EventText  EventType = "text"
	EventImage EventType = "image"
)

// Event is a decoded, already-verified inbound message from one user.
type Event struct {
	Type     EventType
	Text     string // set for EventText
	Image    []byte // raw image bytes, set for EventImage
	MIMEType string // image content type, set for EventImage
}

// Ingestor uploads accepted image bytes and returns the stored reference.
// Transcoding and remote storage live behind this interface.
type Ingestor interface {
	Ingest(ctx context.Context, data []byte, mimeType string) (session.ImageRef, error)
}
