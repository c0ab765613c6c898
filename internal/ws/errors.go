package ws

import "errors"

var (
	// User-triggered failures, converted to error events on the
	// originating connection.
	ErrNotAuthenticated = errors.New("connection is not authenticated")
	ErrForbidden        = errors.New("user is not a member of the group")
	ErrInvalidContent   = errors.New("message content is empty")
	ErrGroupNotFound    = errors.New("group not found")

	// Registry invariant violations. Logged and aborted, never sent to peers.
	ErrDuplicateConnection = errors.New("connection already registered")
	ErrUnknownConnection   = errors.New("unknown connection")
)
