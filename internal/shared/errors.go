package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Store errors
	ErrStoreNotReady = fmt.Errorf("store not initialized")
	ErrTrackNotFound = fmt.Errorf("track not found")
	ErrTransaction   = fmt.Errorf("transaction failed")

	// Playback errors
	ErrPlaybackResolution = fmt.Errorf("no audio payload available")
	ErrNoDevice           = fmt.Errorf("playback device unavailable")

	// Input validation errors
	ErrValidation      = fmt.Errorf("invalid track metadata")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
)
