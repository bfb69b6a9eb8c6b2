package state

import (
	"context"
	"sync"

	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Library is the media store surface the dispatcher drives.
type Library interface {
	ListAll(ctx context.Context) ([]models.Track, error)
	Add(ctx context.Context, track models.Track, audio models.Payload, cover *models.Payload) (models.Track, error)
	Update(ctx context.Context, id string, changes models.TrackChanges, audio, cover *models.Payload) (models.Track, error)
	Delete(ctx context.Context, id string) error
}

// Playback is the engine surface the dispatcher drives.
type Playback interface {
	Load(ctx context.Context, trackID string) error
	Pause()
	Stop()
	Seek(seconds float64) error
	SetVolume(v float64)
	ObserveStatus() <-chan models.PlayerStatus
	ObserveCurrentTime() <-chan float64
	ObserveDuration() <-chan float64
}

// Snapshot carries both state slices after a fold.
type Snapshot struct {
	Library models.LibraryState
	Player  models.PlayerState
}

// Dispatcher mediates between commands and the two state slices. All state
// mutation happens in a single fold loop consuming outcomes in completion
// order; command handlers only produce outcomes.
type Dispatcher struct {
	library  Library
	playback Playback
	logger   *log.Logger

	// Position emissions can arrive from both the sampling loop and
	// seeks; the limiter keeps folds at the sampling cadence.
	ticks *rate.Limiter

	outcomes chan Outcome
	done     chan struct{}
	closeOne sync.Once

	mu    sync.Mutex
	lib   models.LibraryState
	plr   models.PlayerState
	subs  []chan Snapshot
	drain sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given store and engine and
// starts its fold loop plus the engine observation pumps.
func NewDispatcher(library Library, playback Playback, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	d := &Dispatcher{
		library:  library,
		playback: playback,
		logger:   logger,
		ticks:    rate.NewLimiter(rate.Limit(1), 2),
		outcomes: make(chan Outcome, 64),
		done:     make(chan struct{}),
		lib:      models.InitialLibraryState(),
		plr:      models.InitialPlayerState(),
	}
	go d.run()
	go d.pumpEngine()
	return d
}

// Library returns the current library slice.
func (d *Dispatcher) Library() models.LibraryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lib
}

// Player returns the current player slice.
func (d *Dispatcher) Player() models.PlayerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plr
}

// Subscribe returns a stream of snapshots, one after every fold. The current
// snapshot is delivered immediately.
func (d *Dispatcher) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 16)
	d.mu.Lock()
	ch <- Snapshot{Library: d.lib, Player: d.plr}
	d.subs = append(d.subs, ch)
	d.mu.Unlock()
	return ch
}

// Dispatch routes a command to its effect. Validation failures surface as
// failure outcomes without reaching the store. Dispatch never blocks on I/O;
// storage and playback effects complete asynchronously.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case LoadLibrary:
		d.deliver(LibraryLoading{})
		d.spawn(func() {
			tracks, err := d.library.ListAll(ctx)
			if err != nil {
				d.deliver(LibraryLoadFailed{Err: err})
				return
			}
			d.deliver(LibraryLoaded{Tracks: tracks})
		})

	case AddTrack:
		if err := cmd.Track.Validate(); err != nil {
			d.deliver(TrackAddFailed{Err: err})
			return
		}
		d.spawn(func() {
			track, err := d.library.Add(ctx, cmd.Track, cmd.Audio, cmd.Cover)
			if err != nil {
				d.deliver(TrackAddFailed{Err: err})
				return
			}
			d.deliver(TrackAdded{Track: track})
		})

	case UpdateTrack:
		d.spawn(func() {
			track, err := d.library.Update(ctx, cmd.ID, cmd.Changes, cmd.Audio, cmd.Cover)
			if err != nil {
				d.deliver(TrackUpdateFailed{Err: err})
				return
			}
			d.deliver(TrackUpdated{Track: track})
		})

	case DeleteTrack:
		d.spawn(func() {
			if err := d.library.Delete(ctx, cmd.ID); err != nil {
				d.deliver(TrackDeleteFailed{Err: err})
				return
			}
			d.deliver(TrackDeleted{ID: cmd.ID})
		})

	case Play:
		d.spawn(func() {
			if err := d.playback.Load(ctx, cmd.TrackID); err != nil {
				d.logger.Warn("playback failed", "track", cmd.TrackID, "err", err)
				d.deliver(PlaybackFailed{Err: err})
				return
			}
			d.deliver(PlaybackStarted{TrackID: cmd.TrackID})
		})

	case Pause:
		d.playback.Pause()
		d.deliver(StatusChanged{Status: models.StatusPaused})

	case Stop:
		d.playback.Stop()
		d.deliver(StatusChanged{Status: models.StatusStopped})

	case SetVolume:
		v := clamp(cmd.Volume, 0, 1)
		d.playback.SetVolume(v)
		d.deliver(VolumeSet{Volume: v})

	case Seek:
		t := clamp(cmd.Seconds, 0, d.Player().Duration)
		if err := d.playback.Seek(t); err != nil {
			d.logger.Warn("seek failed", "err", err)
			return
		}
		d.deliver(ProgressTicked{Seconds: t})

	case SearchTracks:
		d.deliver(QuerySet{Query: cmd.Query})

	case FocusTrack:
		d.deliver(FocusSet{ID: cmd.ID})
	}
}

// Close stops the fold loop. In-flight effects may still complete but their
// outcomes are dropped.
func (d *Dispatcher) Close() {
	d.closeOne.Do(func() { close(d.done) })
}

func (d *Dispatcher) spawn(fn func()) {
	d.drain.Add(1)
	go func() {
		defer d.drain.Done()
		fn()
	}()
}

// deliver hands an outcome to the fold loop, dropping it when closed.
func (d *Dispatcher) deliver(o Outcome) {
	select {
	case d.outcomes <- o:
	case <-d.done:
	}
}

// run is the single fold loop: outcomes are applied in completion order.
func (d *Dispatcher) run() {
	for {
		select {
		case <-d.done:
			return
		case o := <-d.outcomes:
			if _, isTick := o.(ProgressTicked); isTick && !d.ticks.Allow() {
				continue
			}

			d.mu.Lock()
			d.lib = FoldLibrary(d.lib, o)
			d.plr = FoldPlayer(d.plr, o)
			snapshot := Snapshot{Library: d.lib, Player: d.plr}
			subs := d.subs
			d.mu.Unlock()

			for _, ch := range subs {
				select {
				case ch <- snapshot:
				default:
				}
			}

			d.afterFold(o)
		}
	}
}

// afterFold triggers follow-up effects that depend on a folded outcome.
func (d *Dispatcher) afterFold(o Outcome) {
	dur, ok := o.(DurationChanged)
	if !ok || dur.Seconds <= 0 {
		return
	}

	d.mu.Lock()
	id := d.plr.CurrentTrackID
	var stored float64 = -1
	if id != "" {
		if t, found := d.lib.TrackByID(id); found {
			stored = t.Duration
		}
	}
	d.mu.Unlock()

	// First successful playback is the authoritative duration source;
	// write it back once for tracks added without one.
	if stored != 0 {
		return
	}
	seconds := dur.Seconds
	d.spawn(func() {
		track, err := d.library.Update(context.Background(), id, models.TrackChanges{Duration: &seconds}, nil, nil)
		if err != nil {
			d.logger.Warn("failed to persist probed duration", "track", id, "err", err)
			return
		}
		d.deliver(TrackUpdated{Track: track})
	})
}

// pumpEngine converts the engine's observable streams into outcomes.
func (d *Dispatcher) pumpEngine() {
	statuses := d.playback.ObserveStatus()
	positions := d.playback.ObserveCurrentTime()
	durations := d.playback.ObserveDuration()

	for {
		select {
		case <-d.done:
			return
		case s, ok := <-statuses:
			if !ok {
				return
			}
			d.deliver(StatusChanged{Status: s})
		case p, ok := <-positions:
			if !ok {
				return
			}
			d.deliver(ProgressTicked{Seconds: p})
		case dur, ok := <-durations:
			if !ok {
				return
			}
			d.deliver(DurationChanged{Seconds: dur})
		}
	}
}
