package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyEndpoint is returned when the client is built without a backend URL.
	ErrEmptyEndpoint = errors.New("gateway endpoint is empty")

	// ErrEncodeRequest indicates the registration payload could not be serialized.
	ErrEncodeRequest = errors.New("failed to encode registration request")

	// ErrDecodeResponse indicates the backend answered with an unreadable body.
	ErrDecodeResponse = errors.New("failed to decode registration response")

	// ErrCommitFailed indicates the commit call could not be delivered.
	ErrCommitFailed = errors.New("registration commit failed")
)

// CommitError indicates the backend rejected the registration.
type CommitError struct {
	StatusCode int
	Message    string
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("registration rejected with status %d: %s", e.StatusCode, e.Message)
}

func IsCommitError(err error) bool {
	var e *CommitError
	return errors.As(err, &e)
}
