package state

import "github.com/Rayane20777/MusicStream/internal/models"

// Command is the closed set of intents presentation may dispatch.
type Command interface{ command() }

// LoadLibrary materializes the full track collection into the library slice.
type LoadLibrary struct{}

// AddTrack persists a new track with its audio payload and optional cover.
type AddTrack struct {
	Track models.Track
	Audio models.Payload
	Cover *models.Payload
}

// UpdateTrack merges partial changes into an existing track, optionally
// replacing its payloads.
type UpdateTrack struct {
	ID      string
	Changes models.TrackChanges
	Audio   *models.Payload
	Cover   *models.Payload
}

// DeleteTrack removes a track and its payloads.
type DeleteTrack struct {
	ID string
}

// Play loads a track's audio into the playback engine and starts it.
type Play struct {
	TrackID string
}

// Pause suspends playback.
type Pause struct{}

// Stop halts playback and resets the position.
type Stop struct{}

// SetVolume adjusts playback volume; the value is clamped to [0, 1].
type SetVolume struct {
	Volume float64
}

// Seek moves the play head; the position is clamped to [0, duration].
type Seek struct {
	Seconds float64
}

// SearchTracks filters the visible library by a case-insensitive substring
// over title and artist. An empty query shows everything.
type SearchTracks struct {
	Query string
}

// FocusTrack marks a track as the library's focused entry.
type FocusTrack struct {
	ID string
}

func (LoadLibrary) command()  {}
func (AddTrack) command()     {}
func (UpdateTrack) command()  {}
func (DeleteTrack) command()  {}
func (Play) command()         {}
func (Pause) command()        {}
func (Stop) command()         {}
func (SetVolume) command()    {}
func (Seek) command()         {}
func (SearchTracks) command() {}
func (FocusTrack) command()   {}
