package store

import (
	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/simonhull/audiometa"
)

// probeDuration reads the payload's technical metadata and returns its
// duration in seconds. Unparseable or unsupported payloads return 0; the
// playback engine reports the authoritative duration at first play.
func (s *MediaStore) probeDuration(audio models.Payload) float64 {
	if audio.Empty() {
		return 0
	}

	payload := audio
	payload.ID = "probe-" + audio.ID
	handle, err := s.handles.Resolve(payload)
	if err != nil || handle == "" {
		return 0
	}
	defer s.handles.Release(handle)

	file, err := audiometa.Open(handle)
	if err != nil {
		s.logger.Debug("duration probe failed", "err", err)
		return 0
	}
	defer file.Close()

	return file.Audio.Duration.Seconds()
}
