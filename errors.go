package msdfpipe

import "errors"

// Sentinel errors for the pipeline.
var (
	// ErrClosed is returned when sending to a pipeline whose worker has
	// exited or is exiting.
	ErrClosed = errors.New("msdfpipe: pipeline closed")

	// ErrDisconnected is the terminal error of a worker whose owner went
	// away (its context ended) without sending Exit.
	ErrDisconnected = errors.New("msdfpipe: owner disconnected")

	// ErrStaleBatch is returned when reading a batch whose atlas generation
	// has since been cleared by ResetAtlas.
	ErrStaleBatch = errors.New("msdfpipe: batch belongs to a cleared atlas generation")

	// ErrNilCommand is returned by Send for a nil command.
	ErrNilCommand = errors.New("msdfpipe: nil command")
)
