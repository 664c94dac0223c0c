package session

import "errors"

var (
	// ErrEmptyUserID is returned when a lookup is attempted without a user identifier.
	ErrEmptyUserID = errors.New("empty user id")
)
