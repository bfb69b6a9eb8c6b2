package state

import "github.com/Rayane20777/MusicStream/internal/models"

// FoldPlayer folds one outcome into the player slice. Outcomes it does not
// recognize return the state unchanged.
//
// The folds maintain the slice invariants: playing implies a loaded track,
// stopped resets the position to 0, and positions stay within [0, duration].
func FoldPlayer(s models.PlayerState, o Outcome) models.PlayerState {
	switch o := o.(type) {
	case PlaybackStarted:
		s.Status = models.StatusPlaying
		s.LoadingStatus = models.LoadingSuccess
		s.CurrentTrackID = o.TrackID

	case PlaybackFailed:
		// Prior status and position are retained.
		s.LoadingStatus = models.LoadingError

	case StatusChanged:
		switch o.Status {
		case models.StatusPlaying:
			// A playing status without a loaded track is not
			// representable; ignore stray signals.
			if s.CurrentTrackID == "" {
				return s
			}
			s.Status = models.StatusPlaying
		case models.StatusStopped:
			s.Status = models.StatusStopped
			s.CurrentTime = 0
			s.CurrentTrackID = ""
		default:
			s.Status = o.Status
		}

	case ProgressTicked:
		// A tick completed before a stop may fold after it; stopped
		// state keeps position 0 until the next play.
		if s.Status == models.StatusStopped {
			return s
		}
		hi := s.Duration
		if hi <= 0 {
			// Duration unknown until the device reports it.
			hi = o.Seconds
		}
		s.CurrentTime = clamp(o.Seconds, 0, hi)

	case DurationChanged:
		if o.Seconds >= 0 {
			s.Duration = o.Seconds
		}

	case VolumeSet:
		s.Volume = clamp(o.Volume, 0, 1)
	}

	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
