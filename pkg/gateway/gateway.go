package gateway

import "context"

// Mode selects how the backend produces the character's attributes.
type Mode string

const (
	// ModeAutomatic asks the backend to generate attributes from the image.
	ModeAutomatic Mode = "auto"
	// ModeManual registers the user-supplied attributes as-is.
	ModeManual Mode = "manual"
)

// Image identifies the previously uploaded character image.
type Image struct {
	ExternalID string `json:"externalId"`
	URL        string `json:"url"`
}

// Attributes is the complete manual attribute record.
type Attributes struct {
	Name        string `json:"name"`
	HP          int    `json:"hp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Speed       int    `json:"speed"`
	Magic       int    `json:"magic"`
	Luck        int    `json:"luck"`
	Description string `json:"description"`
}

// Request is the pending registration constructed at a terminal transition.
// Attributes is nil for automatic mode.
type Request struct {
	Mode       Mode        `json:"mode"`
	Image      Image       `json:"image"`
	Attributes *Attributes `json:"attributes,omitempty"`
}

// Summary is the backend's acknowledgement of a registered character.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Gateway performs the single outbound commit call for a completed session.
type Gateway interface {
	Commit(ctx context.Context, req Request) (Summary, error)
}
