package messenger

import "context"

// Message is a single outbound text message.
type Message struct {
	Text string `json:"text"`
}

// Text is a convenience constructor.
func Text(s string) Message {
	return Message{Text: s}
}

// Messenger sends messages to one user. Implementations must be safe for
// concurrent use.
type Messenger interface {
	Send(ctx context.Context, userID string, msgs []Message) error
}
