package messenger

import "errors"

var (
	// ErrEmptyEndpoint is returned when the push client is built without an endpoint.
	ErrEmptyEndpoint = errors.New("messenger endpoint is empty")

	// ErrSendFailed indicates a message batch could not be delivered.
	ErrSendFailed = errors.New("failed to send messages")
)
