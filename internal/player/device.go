package player

// Signal enumerates device-level events. Each signal maps to exactly one
// status transition in the engine.
type Signal int

const (
	// SignalPlaying fires when the device starts producing output.
	SignalPlaying Signal = iota
	// SignalPaused fires on an explicit suspension.
	SignalPaused
	// SignalBuffering fires when the device stalls awaiting data.
	SignalBuffering
	// SignalEnded fires when the device reaches the end of media.
	SignalEnded
)

func (s Signal) String() string {
	switch s {
	case SignalPlaying:
		return "playing"
	case SignalPaused:
		return "paused"
	case SignalBuffering:
		return "buffering"
	case SignalEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Device abstracts the underlying playback hardware. Exactly one Device
// exists per process and it is owned exclusively by the [Engine].
type Device interface {
	// Assign loads the media behind the handle, releasing any previously
	// assigned source first.
	Assign(handle string) error
	// Play starts or resumes playback of the assigned media.
	Play() error
	// Pause suspends playback, keeping the media loaded.
	Pause()
	// Stop suspends playback and rewinds to 0, keeping the media loaded.
	Stop()
	// Seek moves the play head to the given position in seconds. The
	// caller clamps to [0, duration].
	Seek(seconds float64) error
	// SetVolume sets the linear volume. The caller clamps to [0, 1].
	SetVolume(v float64)
	// Position reports the current play head in seconds.
	Position() float64
	// Duration reports the total length of the assigned media in seconds,
	// 0 when nothing is assigned.
	Duration() float64
	// Signals delivers device-level events.
	Signals() <-chan Signal
	// Close releases the device and its assigned source.
	Close() error
}
