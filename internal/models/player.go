package models

// PlayerStatus enumerates the playback state machine states.
type PlayerStatus string

const (
	StatusStopped   PlayerStatus = "stopped"
	StatusBuffering PlayerStatus = "buffering"
	StatusPlaying   PlayerStatus = "playing"
	StatusPaused    PlayerStatus = "paused"
)

// LoadingStatus reflects the outcome of the most recent load attempt.
type LoadingStatus string

const (
	LoadingInProgress LoadingStatus = "loading"
	LoadingError      LoadingStatus = "error"
	LoadingSuccess    LoadingStatus = "success"
)

// PlayerState is the player slice consumed by presentation.
//
// Invariants: status playing implies CurrentTrackID != "", and stopped resets
// CurrentTime to 0. Both are enforced by the state folds.
type PlayerState struct {
	Status         PlayerStatus  `json:"status"`
	LoadingStatus  LoadingStatus `json:"loadingStatus"`
	CurrentTime    float64       `json:"currentTime"`
	Duration       float64       `json:"duration"`
	Volume         float64       `json:"volume"`
	CurrentTrackID string        `json:"currentTrackId,omitempty"`
}

// InitialPlayerState returns the state before any command has been folded.
func InitialPlayerState() PlayerState {
	return PlayerState{
		Status:        StatusStopped,
		LoadingStatus: LoadingSuccess,
		Volume:        1,
	}
}

// LibraryState is the library slice consumed by presentation. Tracks keep
// insertion order. FocusedID, when set, always references a present track;
// deleting the focused track clears it.
type LibraryState struct {
	Tracks    []Track `json:"tracks"`
	Loading   bool    `json:"loading"`
	Err       error   `json:"-"`
	FocusedID string  `json:"focusedId,omitempty"`
	Query     string  `json:"query,omitempty"`
}

// InitialLibraryState returns the state before any command has been folded.
func InitialLibraryState() LibraryState {
	return LibraryState{}
}

// TrackByID returns the track with the given ID and whether it is present.
func (s LibraryState) TrackByID(id string) (Track, bool) {
	for _, t := range s.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Visible returns the tracks matching the current search query, preserving
// insertion order. An empty query returns every track.
func (s LibraryState) Visible() []Track {
	if s.Query == "" {
		return s.Tracks
	}
	return FilterTracks(s.Tracks, s.Query)
}
