package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Library errors
	ErrLibraryNotFound = fmt.Errorf("library root not found")
	ErrTrackNotFound   = fmt.Errorf("track not found")
	ErrEmptyLibrary    = fmt.Errorf("library contains no tracks")
	ErrCacheMiss       = fmt.Errorf("library cache is empty")

	// Playback errors
	ErrUnplayable      = fmt.Errorf("file cannot be played")
	ErrQueueEmpty      = fmt.Errorf("queue is empty")
	ErrIndexOutOfRange = fmt.Errorf("index out of range")
	ErrNothingPlaying  = fmt.Errorf("nothing is playing")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
