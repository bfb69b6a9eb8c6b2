// package testing contains shared testing utilities
package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/player"
)

// FakeDevice is a test double for [player.Device]. It records commands and
// lets tests drive the signal contract directly.
type FakeDevice struct {
	mu       sync.Mutex
	assigned string
	playing  bool
	position float64
	duration float64
	volume   float64
	signals  chan player.Signal

	AssignErr error
	PlayErr   error
}

var _ player.Device = (*FakeDevice)(nil)

func NewFakeDevice(duration float64) *FakeDevice {
	return &FakeDevice{duration: duration, volume: 1, signals: make(chan player.Signal, 16)}
}

func (d *FakeDevice) Assign(handle string) error {
	if d.AssignErr != nil {
		return d.AssignErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.assigned = handle
	d.position = 0
	return nil
}

func (d *FakeDevice) Play() error {
	if d.PlayErr != nil {
		return d.PlayErr
	}
	d.mu.Lock()
	d.playing = true
	d.mu.Unlock()
	d.Emit(player.SignalPlaying)
	return nil
}

func (d *FakeDevice) Pause() {
	d.mu.Lock()
	d.playing = false
	d.mu.Unlock()
	d.Emit(player.SignalPaused)
}

func (d *FakeDevice) Stop() {
	d.mu.Lock()
	d.playing = false
	d.position = 0
	d.mu.Unlock()
}

func (d *FakeDevice) Seek(seconds float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.position = seconds
	return nil
}

func (d *FakeDevice) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = v
}

func (d *FakeDevice) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

func (d *FakeDevice) Duration() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duration
}

func (d *FakeDevice) Signals() <-chan player.Signal { return d.signals }

func (d *FakeDevice) Close() error { return nil }

// Emit pushes a device signal, as hardware would.
func (d *FakeDevice) Emit(s player.Signal) {
	d.signals <- s
}

// Assigned returns the currently assigned handle.
func (d *FakeDevice) Assigned() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.assigned
}

// Volume returns the last volume set on the device.
func (d *FakeDevice) Volume() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volume
}

// SetPosition moves the fake play head, as decoding progress would.
func (d *FakeDevice) SetPosition(p float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.position = p
}

// FakeFetcher is a test double for [player.AudioFetcher] backed by a map.
type FakeFetcher struct {
	Payloads map[string]models.Payload
	Err      error
}

func (f *FakeFetcher) FetchAudioPayload(_ context.Context, id string) (models.Payload, error) {
	if f.Err != nil {
		return models.Payload{}, f.Err
	}
	return f.Payloads[id], nil
}

// AudioPayload builds a small deterministic audio payload for a track ID.
func AudioPayload(id string, size int) models.Payload {
	blob := make([]byte, size)
	for i := range blob {
		blob[i] = byte(i % 251)
	}
	return models.Payload{ID: id, Blob: blob, ContentType: "audio/mpeg"}
}

// ValidTrack returns metadata passing validation.
func ValidTrack(title string) models.Track {
	return models.Track{
		Title:    title,
		Artist:   "Test Artist",
		Category: models.CategoryPop,
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File still exists: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return content
}
