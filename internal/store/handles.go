package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Rayane20777/MusicStream/internal/models"
)

// HandleManager materializes binary payloads into session-scoped files and
// tracks their lifetime. A handle is the file's path: directly usable by the
// playback device and by presentation, worthless after release or once the
// session directory is gone.
type HandleManager struct {
	mu      sync.Mutex
	dir     string
	seq     int
	byTrack map[string][]string
}

// NewHandleManager creates a manager rooted at a fresh session directory
// under baseDir. An empty baseDir uses the OS temp directory.
func NewHandleManager(baseDir string) (*HandleManager, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir, err := os.MkdirTemp(baseDir, "musicstream-handles-")
	if err != nil {
		return nil, fmt.Errorf("failed to create handle directory: %w", err)
	}
	return &HandleManager{dir: dir, byTrack: make(map[string][]string)}, nil
}

// Resolve writes the payload to a new file and returns its path. Each call
// allocates a fresh handle; nothing is cached, since the payload content may
// have been replaced since the last resolution.
func (m *HandleManager) Resolve(payload models.Payload) (string, error) {
	if payload.Empty() {
		return "", nil
	}

	m.mu.Lock()
	m.seq++
	name := fmt.Sprintf("%s-%d%s", payload.ID, m.seq, extensionFor(payload.ContentType))
	m.mu.Unlock()

	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, payload.Blob, 0600); err != nil {
		return "", fmt.Errorf("failed to materialize payload %s: %w", payload.ID, err)
	}

	m.mu.Lock()
	m.byTrack[payload.ID] = append(m.byTrack[payload.ID], path)
	m.mu.Unlock()

	return path, nil
}

// Release revokes a single handle. Releasing an unknown or already-released
// handle is a no-op.
func (m *HandleManager) Release(handle string) {
	if handle == "" {
		return
	}

	m.mu.Lock()
	for id, paths := range m.byTrack {
		for i, p := range paths {
			if p == handle {
				m.byTrack[id] = append(paths[:i], paths[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	os.Remove(handle)
}

// ReleaseTrack revokes every live handle belonging to the given track ID.
// Called on delete and on payload replacement.
func (m *HandleManager) ReleaseTrack(id string) {
	m.mu.Lock()
	paths := m.byTrack[id]
	delete(m.byTrack, id)
	m.mu.Unlock()

	for _, p := range paths {
		os.Remove(p)
	}
}

// Live returns the number of live handles for a track ID.
func (m *HandleManager) Live(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byTrack[id])
}

// Close removes the session directory and every handle in it.
func (m *HandleManager) Close() error {
	m.mu.Lock()
	m.byTrack = make(map[string][]string)
	m.mu.Unlock()
	return os.RemoveAll(m.dir)
}

// extensionFor picks a file extension so decoders and viewers can sniff the
// handle by name.
func extensionFor(contentType string) string {
	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/flac":
		return ".flac"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".bin"
	}
}
