package state

import "github.com/Rayane20777/MusicStream/internal/models"

// FoldLibrary folds one outcome into the library slice. Outcomes it does not
// recognize return the state unchanged.
func FoldLibrary(s models.LibraryState, o Outcome) models.LibraryState {
	switch o := o.(type) {
	case LibraryLoading:
		s.Loading = true
		s.Err = nil

	case LibraryLoaded:
		s.Tracks = o.Tracks
		s.Loading = false
		s.Err = nil
		if s.FocusedID != "" {
			if _, ok := s.TrackByID(s.FocusedID); !ok {
				s.FocusedID = ""
			}
		}

	case LibraryLoadFailed:
		s.Err = o.Err
		s.Loading = false

	case TrackAdded:
		s.Tracks = append(append([]models.Track{}, s.Tracks...), o.Track)
		s.Err = nil

	case TrackAddFailed:
		s.Err = o.Err

	case TrackUpdated:
		tracks := make([]models.Track, len(s.Tracks))
		copy(tracks, s.Tracks)
		for i := range tracks {
			if tracks[i].ID == o.Track.ID {
				// Keep the already-resolved handles unless the
				// update produced fresh ones.
				if o.Track.AudioHandle == "" {
					o.Track.AudioHandle = tracks[i].AudioHandle
				}
				if o.Track.CoverHandle == "" {
					o.Track.CoverHandle = tracks[i].CoverHandle
				}
				tracks[i] = o.Track
				break
			}
		}
		s.Tracks = tracks
		s.Err = nil

	case TrackUpdateFailed:
		s.Err = o.Err

	case TrackDeleted:
		tracks := make([]models.Track, 0, len(s.Tracks))
		for _, t := range s.Tracks {
			if t.ID != o.ID {
				tracks = append(tracks, t)
			}
		}
		s.Tracks = tracks
		if s.FocusedID == o.ID {
			s.FocusedID = ""
		}
		s.Err = nil

	case TrackDeleteFailed:
		s.Err = o.Err

	case QuerySet:
		s.Query = o.Query

	case FocusSet:
		if o.ID == "" {
			s.FocusedID = ""
			break
		}
		if _, ok := s.TrackByID(o.ID); ok {
			s.FocusedID = o.ID
		}

	case PlaybackStarted:
		if _, ok := s.TrackByID(o.TrackID); ok {
			s.FocusedID = o.TrackID
		}
	}

	return s
}
