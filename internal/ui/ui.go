package ui

import (
	"context"
	"fmt"

	"github.com/Rayane20777/MusicStream/internal/formatter"
	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// snapshotMsg carries a state snapshot from the dispatcher into the Elm loop.
type snapshotMsg state.Snapshot

// Model represents the TUI application state. It renders from the two state
// slices exclusively; every key press becomes a dispatched command.
type Model struct {
	ctx        context.Context
	dispatcher *state.Dispatcher
	snapshots  <-chan state.Snapshot

	width  int
	height int

	trackList list.Model
	listReady bool
	library   models.LibraryState
	player    models.PlayerState

	help help.Model
	keys keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	play   key.Binding
	pause  key.Binding
	stop   key.Binding
	volUp  key.Binding
	volDn  key.Binding
	seekFw key.Binding
	seekBk key.Binding
	del    key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		pause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		volUp:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "louder")),
		volDn:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "softer")),
		seekFw: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +5s")),
		seekBk: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -5s")),
		del:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.pause, k.stop, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play},
		{k.pause, k.stop, k.del},
		{k.volUp, k.volDn, k.seekFw, k.seekBk},
		{k.quit},
	}
}

// NewModel creates a new TUI model over the dispatcher.
func NewModel(ctx context.Context, dispatcher *state.Dispatcher) *Model {
	return &Model{
		ctx:        ctx,
		dispatcher: dispatcher,
		snapshots:  dispatcher.Subscribe(),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init dispatches the initial library load and arms the snapshot pump.
func (m *Model) Init() tea.Cmd {
	m.dispatcher.Dispatch(m.ctx, state.LoadLibrary{})
	return m.waitForSnapshot()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.trackList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case snapshotMsg:
		m.library = msg.Library
		m.player = msg.Player
		items := trackItems(m.library.Visible())
		if !m.listReady {
			m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
			m.trackList.Title = "Library"
			m.trackList.SetSize(m.width-4, m.height-10)
			m.listReady = true
		} else {
			m.trackList.SetItems(items)
		}
		return m, m.waitForSnapshot()
	}

	return m.updateList(msg)
}

// View renders the track list above the now-playing footer.
func (m *Model) View() string {
	if m.library.Err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.library.Err))
	}
	if !m.listReady {
		return styles.title.Render("Loading library...")
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s\n\n%s", m.trackList.View(), m.renderNowPlaying(), helpView)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.play):
		if t, ok := m.selectedTrack(); ok {
			m.dispatcher.Dispatch(m.ctx, state.Play{TrackID: t.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.pause):
		if m.player.Status == models.StatusPlaying {
			m.dispatcher.Dispatch(m.ctx, state.Pause{})
		}
		return m, nil

	case key.Matches(msg, m.keys.stop):
		m.dispatcher.Dispatch(m.ctx, state.Stop{})
		return m, nil

	case key.Matches(msg, m.keys.volUp):
		m.dispatcher.Dispatch(m.ctx, state.SetVolume{Volume: m.player.Volume + 0.1})
		return m, nil

	case key.Matches(msg, m.keys.volDn):
		m.dispatcher.Dispatch(m.ctx, state.SetVolume{Volume: m.player.Volume - 0.1})
		return m, nil

	case key.Matches(msg, m.keys.seekFw):
		m.dispatcher.Dispatch(m.ctx, state.Seek{Seconds: m.player.CurrentTime + 5})
		return m, nil

	case key.Matches(msg, m.keys.seekBk):
		m.dispatcher.Dispatch(m.ctx, state.Seek{Seconds: m.player.CurrentTime - 5})
		return m, nil

	case key.Matches(msg, m.keys.del):
		if t, ok := m.selectedTrack(); ok {
			m.dispatcher.Dispatch(m.ctx, state.DeleteTrack{ID: t.ID})
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) selectedTrack() (models.Track, bool) {
	if !m.listReady {
		return models.Track{}, false
	}
	selected := m.trackList.SelectedItem()
	if selected == nil {
		return models.Track{}, false
	}
	item, ok := selected.(trackItem)
	return item.track, ok
}

func (m *Model) renderNowPlaying() string {
	var current string
	if m.player.CurrentTrackID != "" {
		if t, ok := m.library.TrackByID(m.player.CurrentTrackID); ok {
			current = fmt.Sprintf("%s — %s", t.Title, t.Artist)
		} else {
			current = m.player.CurrentTrackID
		}
	} else {
		current = "nothing loaded"
	}

	status := string(m.player.Status)
	if m.player.LoadingStatus == models.LoadingError {
		status = styles.err.Render("playback error")
	}

	return fmt.Sprintf("%s %s  %s/%s  vol %.0f%%",
		styles.ok.Render(fmt.Sprintf("[%s]", status)),
		current,
		formatter.FormatDuration(m.player.CurrentTime),
		formatter.FormatDuration(m.player.Duration),
		m.player.Volume*100,
	)
}

// waitForSnapshot re-arms the snapshot pump, one message per fold.
func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-m.snapshots
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(snapshot)
	}
}
