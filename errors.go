package adclient

import "errors"

// Client errors.
var (
	// ErrNoEditorContext is returned when an operation requires the process
	// to have been launched from inside ad but the buffer id marker is absent.
	ErrNoEditorContext = errors.New("not launched from inside ad: bufid is not set")

	// ErrFollowerClosed is returned by Next after a follower has been closed.
	ErrFollowerClosed = errors.New("follower is closed")

	// ErrCancelled is returned when the user dismisses a minibuffer
	// selection without choosing a candidate.
	ErrCancelled = errors.New("minibuffer selection cancelled")

	// ErrNoCandidates is returned when a minibuffer selection is requested
	// with an empty candidate list.
	ErrNoCandidates = errors.New("minibuffer requires at least one candidate")
)
