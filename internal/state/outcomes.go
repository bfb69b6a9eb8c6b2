package state

import "github.com/Rayane20777/MusicStream/internal/models"

// Outcome is the closed set of terminal results folded into state. Every
// asynchronous command resolves to exactly one success or one failure
// outcome, never both, never neither.
type Outcome interface{ outcome() }

// LibraryLoading toggles the library loading flag while a load is in flight.
type LibraryLoading struct{}

// LibraryLoaded replaces the track collection.
type LibraryLoaded struct {
	Tracks []models.Track
}

// LibraryLoadFailed records a load error on the library slice.
type LibraryLoadFailed struct {
	Err error
}

// TrackAdded appends the persisted track to the library.
type TrackAdded struct {
	Track models.Track
}

// TrackAddFailed records an add error.
type TrackAddFailed struct {
	Err error
}

// TrackUpdated merges the updated track in place by ID.
type TrackUpdated struct {
	Track models.Track
}

// TrackUpdateFailed records an update error.
type TrackUpdateFailed struct {
	Err error
}

// TrackDeleted removes the track by ID, clearing focus if it was focused.
type TrackDeleted struct {
	ID string
}

// TrackDeleteFailed records a delete error.
type TrackDeleteFailed struct {
	Err error
}

// PlaybackStarted marks the player as playing the given track.
type PlaybackStarted struct {
	TrackID string
}

// PlaybackFailed sets the player loading status to error, leaving prior
// status and position unchanged.
type PlaybackFailed struct {
	Err error
}

// StatusChanged folds a normalized device status into the player slice.
type StatusChanged struct {
	Status models.PlayerStatus
}

// ProgressTicked updates the play head position.
type ProgressTicked struct {
	Seconds float64
}

// DurationChanged records the authoritative media duration.
type DurationChanged struct {
	Seconds float64
}

// VolumeSet records the clamped volume.
type VolumeSet struct {
	Volume float64
}

// QuerySet records the library search filter.
type QuerySet struct {
	Query string
}

// FocusSet records the focused track ID.
type FocusSet struct {
	ID string
}

func (LibraryLoading) outcome()    {}
func (LibraryLoaded) outcome()     {}
func (LibraryLoadFailed) outcome() {}
func (TrackAdded) outcome()        {}
func (TrackAddFailed) outcome()    {}
func (TrackUpdated) outcome()      {}
func (TrackUpdateFailed) outcome() {}
func (TrackDeleted) outcome()      {}
func (TrackDeleteFailed) outcome() {}
func (PlaybackStarted) outcome()   {}
func (PlaybackFailed) outcome()    {}
func (StatusChanged) outcome()     {}
func (ProgressTicked) outcome()    {}
func (DurationChanged) outcome()   {}
func (VolumeSet) outcome()         {}
func (QuerySet) outcome()          {}
func (FocusSet) outcome()          {}
