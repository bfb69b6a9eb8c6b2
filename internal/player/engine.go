package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/charmbracelet/log"
)

// AudioFetcher resolves a track's audio payload. Implemented by the media
// store; the engine never touches store internals.
type AudioFetcher interface {
	FetchAudioPayload(ctx context.Context, id string) (models.Payload, error)
}

// HandleResolver converts payloads into playable handles and revokes them.
type HandleResolver interface {
	Resolve(payload models.Payload) (string, error)
	Release(handle string)
}

const tickInterval = time.Second

// Engine drives the playback device through the status state machine and
// exposes status, position and duration as observable streams.
type Engine struct {
	device  Device
	fetcher AudioFetcher
	handles HandleResolver
	logger  *log.Logger

	mu       sync.Mutex
	status   models.PlayerStatus
	position float64
	duration float64
	trackID  string
	handle   string
	closed   bool

	statusSubs   []chan models.PlayerStatus
	positionSubs []chan float64
	durationSubs []chan float64

	done chan struct{}
}

// NewEngine wires the engine to its device and starts the signal and
// position-sampling loops. The engine takes ownership of the device.
func NewEngine(device Device, fetcher AudioFetcher, handles HandleResolver, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	e := &Engine{
		device:  device,
		fetcher: fetcher,
		handles: handles,
		logger:  logger,
		status:  models.StatusStopped,
		done:    make(chan struct{}),
	}
	go e.consumeSignals()
	go e.samplePosition()
	return e
}

// Load fetches the track's audio payload, assigns it to the device and starts
// playback. A missing payload reports [shared.ErrPlaybackResolution] and
// leaves the engine state unchanged. Any previously assigned handle is
// released before reassignment.
func (e *Engine) Load(ctx context.Context, trackID string) error {
	payload, err := e.fetcher.FetchAudioPayload(ctx, trackID)
	if err != nil {
		return err
	}
	if payload.Empty() {
		return fmt.Errorf("%w: track %s", shared.ErrPlaybackResolution, trackID)
	}

	handle, err := e.handles.Resolve(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackResolution, err)
	}

	e.mu.Lock()
	previous := e.handle
	e.handle = handle
	e.trackID = trackID
	e.mu.Unlock()

	if err := e.device.Assign(handle); err != nil {
		e.handles.Release(handle)
		return fmt.Errorf("%w: %v", shared.ErrPlaybackResolution, err)
	}
	if previous != "" {
		e.handles.Release(previous)
	}

	if err := e.device.Play(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackResolution, err)
	}

	e.logger.Info("playback started", "track", trackID)
	return nil
}

// Pause suspends the device. The resulting status change arrives through the
// device's paused signal.
func (e *Engine) Pause() {
	e.device.Pause()
}

// Resume restarts playback of the currently assigned media.
func (e *Engine) Resume() error {
	e.mu.Lock()
	loaded := e.handle != ""
	e.mu.Unlock()
	if !loaded {
		return shared.ErrPlaybackResolution
	}
	return e.device.Play()
}

// Stop halts playback, resets the position to 0 and leaves the device loaded.
func (e *Engine) Stop() {
	e.device.Stop()

	e.mu.Lock()
	e.status = models.StatusStopped
	e.position = 0
	e.mu.Unlock()

	e.publishStatus(models.StatusStopped)
	e.publishPosition(0)
}

// Seek moves the play head, clamped to [0, duration].
func (e *Engine) Seek(seconds float64) error {
	e.mu.Lock()
	duration := e.duration
	e.mu.Unlock()

	seconds = clamp(seconds, 0, duration)
	if err := e.device.Seek(seconds); err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}

	e.mu.Lock()
	e.position = seconds
	e.mu.Unlock()
	e.publishPosition(seconds)
	return nil
}

// SetVolume sets the device volume, clamped to [0, 1].
func (e *Engine) SetVolume(v float64) {
	e.device.SetVolume(clamp(v, 0, 1))
}

// CurrentTrack returns the ID of the loaded track, empty when none.
func (e *Engine) CurrentTrack() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trackID
}

// Status returns the latest known status.
func (e *Engine) Status() models.PlayerStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// ObserveStatus returns a stream of status values. The latest known value is
// delivered immediately, then every subsequent change.
func (e *Engine) ObserveStatus() <-chan models.PlayerStatus {
	ch := make(chan models.PlayerStatus, 16)
	e.mu.Lock()
	ch <- e.status
	e.statusSubs = append(e.statusSubs, ch)
	e.mu.Unlock()
	return ch
}

// ObserveCurrentTime returns a stream of play head positions in seconds.
func (e *Engine) ObserveCurrentTime() <-chan float64 {
	ch := make(chan float64, 16)
	e.mu.Lock()
	ch <- e.position
	e.positionSubs = append(e.positionSubs, ch)
	e.mu.Unlock()
	return ch
}

// ObserveDuration returns a stream of media durations in seconds.
func (e *Engine) ObserveDuration() <-chan float64 {
	ch := make(chan float64, 16)
	e.mu.Lock()
	ch <- e.duration
	e.durationSubs = append(e.durationSubs, ch)
	e.mu.Unlock()
	return ch
}

// Close stops the loops, closes the device and releases the current handle.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	handle := e.handle
	e.handle = ""
	e.mu.Unlock()

	close(e.done)
	if handle != "" {
		e.handles.Release(handle)
	}
	return e.device.Close()
}

// consumeSignals folds device signals into the status state machine. Each
// signal maps to exactly one transition.
func (e *Engine) consumeSignals() {
	for {
		select {
		case <-e.done:
			return
		case sig, ok := <-e.device.Signals():
			if !ok {
				return
			}
			e.applySignal(sig)
		}
	}
}

func (e *Engine) applySignal(sig Signal) {
	switch sig {
	case SignalPlaying:
		duration := e.device.Duration()
		e.mu.Lock()
		e.status = models.StatusPlaying
		e.duration = duration
		e.mu.Unlock()
		e.publishStatus(models.StatusPlaying)
		e.publishDuration(duration)

	case SignalPaused:
		e.mu.Lock()
		// An explicit Stop already reset state; a trailing pause
		// signal from the device must not resurrect "paused".
		if e.status == models.StatusStopped {
			e.mu.Unlock()
			return
		}
		e.status = models.StatusPaused
		e.mu.Unlock()
		e.publishStatus(models.StatusPaused)

	case SignalBuffering:
		e.mu.Lock()
		e.status = models.StatusBuffering
		e.mu.Unlock()
		e.publishStatus(models.StatusBuffering)

	case SignalEnded:
		e.mu.Lock()
		e.status = models.StatusStopped
		e.position = 0
		e.mu.Unlock()
		e.publishStatus(models.StatusStopped)
		e.publishPosition(0)
	}
}

// samplePosition emits the play head once per second while playing. The
// status check happens at each tick, so pausing stops emissions immediately.
func (e *Engine) samplePosition() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.mu.Lock()
			playing := e.status == models.StatusPlaying
			e.mu.Unlock()
			if !playing {
				continue
			}

			pos := e.device.Position()
			e.mu.Lock()
			e.position = pos
			e.mu.Unlock()
			e.publishPosition(pos)
		}
	}
}

func (e *Engine) publishStatus(s models.PlayerStatus) {
	e.mu.Lock()
	subs := e.statusSubs
	e.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- s:
		default:
		}
	}
}

func (e *Engine) publishPosition(p float64) {
	e.mu.Lock()
	subs := e.positionSubs
	e.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- p:
		default:
		}
	}
}

func (e *Engine) publishDuration(d float64) {
	e.mu.Lock()
	subs := e.durationSubs
	e.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- d:
		default:
		}
	}
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
