package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// BeepDevice implements [Device] over faiface/beep and the system speaker.
// The speaker is process-global, so construct at most one BeepDevice.
type BeepDevice struct {
	sampleRate beep.SampleRate

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	vol      float64

	// queued reports whether the playback chain is on the speaker. The
	// end-of-media callback runs on the speaker's mixer goroutine with
	// the speaker mutex held, so it must never take d.mu.
	queued atomic.Bool

	signals chan Signal
}

// NewBeepDevice initializes the speaker at the given sample rate and buffer
// size and returns the device.
func NewBeepDevice(sampleRate, bufferMillis int) (*BeepDevice, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Duration(bufferMillis)*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNoDevice, err)
	}
	return &BeepDevice{
		sampleRate: sr,
		vol:        1,
		signals:    make(chan Signal, 16),
	}, nil
}

// Assign decodes the media behind the handle and prepares the playback chain,
// releasing any previously assigned source first.
func (d *BeepDevice) Assign(handle string) error {
	f, err := os.Open(handle)
	if err != nil {
		return fmt.Errorf("failed to open handle: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(handle)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode media: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseLocked()

	resampled := beep.Resample(4, format.SampleRate, d.sampleRate, streamer)
	d.ctrl = &beep.Ctrl{Streamer: resampled}
	d.volume = &effects.Volume{
		Streamer: d.ctrl,
		Base:     2,
		Volume:   math.Log2(math.Max(d.vol, 1e-9)),
		Silent:   d.vol == 0,
	}
	d.file = f
	d.streamer = streamer
	d.format = format
	d.queued.Store(false)
	return nil
}

// Play starts playback of the assigned media, or resumes it when paused. The
// end of media is reported through [SignalEnded].
func (d *BeepDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.streamer == nil {
		return fmt.Errorf("%w: no media assigned", shared.ErrNoDevice)
	}

	if d.queued.Load() {
		speaker.Lock()
		d.ctrl.Paused = false
		speaker.Unlock()
		d.emit(SignalPlaying)
		return nil
	}

	if d.streamer.Position() >= d.streamer.Len() {
		if err := d.streamer.Seek(0); err != nil {
			return fmt.Errorf("failed to rewind: %w", err)
		}
	}

	speaker.Clear()
	speaker.Play(beep.Seq(d.volume, beep.Callback(func() {
		// Runs on the mixer goroutine under the speaker mutex.
		d.queued.Store(false)
		d.emit(SignalEnded)
	})))
	d.queued.Store(true)
	d.emit(SignalPlaying)
	return nil
}

// Pause suspends output without unloading the media.
func (d *BeepDevice) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl == nil {
		return
	}
	speaker.Lock()
	d.ctrl.Paused = true
	speaker.Unlock()
	d.emit(SignalPaused)
}

// Stop suspends output and rewinds to 0, leaving the media loaded.
func (d *BeepDevice) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl == nil {
		return
	}
	speaker.Lock()
	d.ctrl.Paused = true
	d.streamer.Seek(0)
	speaker.Unlock()
}

// Seek moves the play head to the given position in seconds.
func (d *BeepDevice) Seek(seconds float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return fmt.Errorf("%w: no media assigned", shared.ErrNoDevice)
	}
	speaker.Lock()
	err := d.streamer.Seek(d.format.SampleRate.N(time.Duration(seconds * float64(time.Second))))
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

// SetVolume sets the linear volume, mapped onto the exponential scale beep's
// volume effect expects.
func (d *BeepDevice) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vol = v
	if d.volume == nil {
		return
	}
	speaker.Lock()
	d.volume.Silent = v == 0
	if v > 0 {
		d.volume.Volume = math.Log2(v)
	}
	speaker.Unlock()
}

// Position reports the current play head in seconds.
func (d *BeepDevice) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := d.format.SampleRate.D(d.streamer.Position())
	speaker.Unlock()
	return pos.Seconds()
}

// Duration reports the total media length in seconds.
func (d *BeepDevice) Duration() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return 0
	}
	return d.format.SampleRate.D(d.streamer.Len()).Seconds()
}

// Signals delivers device-level events.
func (d *BeepDevice) Signals() <-chan Signal {
	return d.signals
}

// Close releases the assigned source and silences the speaker.
func (d *BeepDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	speaker.Clear()
	d.releaseLocked()
	return nil
}

func (d *BeepDevice) releaseLocked() {
	if d.streamer != nil {
		speaker.Clear()
		d.streamer.Close()
		d.streamer = nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	d.ctrl = nil
	d.volume = nil
	d.queued.Store(false)
}

func (d *BeepDevice) emit(s Signal) {
	select {
	case d.signals <- s:
	default:
	}
}
