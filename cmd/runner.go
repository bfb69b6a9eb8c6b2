package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rayane20777/MusicStream/internal/formatter"
	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/player"
	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/Rayane20777/MusicStream/internal/state"
	"github.com/Rayane20777/MusicStream/internal/store"
	"github.com/Rayane20777/MusicStream/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{config: opts.Config, logger: opts.Logger, output: opts.Output}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, addCommand, listCommand, updateCommand, deleteCommand, playCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// SetLogger replaces the runner's logger, used by the TUI to redirect logs.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openStore opens the database and returns an initialized media store. The
// returned closer releases the handle session and the connection.
func (r *Runner) openStore(ctx context.Context) (*store.MediaStore, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	handles, err := store.NewHandleManager(r.config.Handles.Dir)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	s := store.NewMediaStore(db, handles, r.logger)
	if err := s.Initialize(ctx); err != nil {
		handles.Close()
		db.Close()
		return nil, nil, err
	}

	closer := func() {
		handles.Close()
		db.Close()
	}
	return s, closer, nil
}

// Setup creates the config file and provisions the database schema.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		r.logger.Warn("config not created", "err", err)
	} else {
		r.logger.Info("config created", "path", path)
	}

	_, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	r.logger.Info("database ready", "path", r.config.Database.Path)
	return nil
}

// Add persists a new track from CLI flags and payload files.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	category, err := models.ParseCategory(cmd.String("category"))
	if err != nil {
		return err
	}

	track := models.Track{
		Title:       cmd.String("title"),
		Artist:      cmd.String("artist"),
		Description: cmd.String("description"),
		Category:    category,
	}
	if err := track.Validate(); err != nil {
		return err
	}

	audio, err := readPayload(cmd.String("audio"))
	if err != nil {
		return err
	}
	var cover *models.Payload
	if path := cmd.String("cover"); path != "" {
		p, err := readPayload(path)
		if err != nil {
			return err
		}
		cover = &p
	}

	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	saved, err := s.Add(ctx, track, audio, cover)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.output, "added %s (%s — %s)\n", saved.ID, saved.Title, saved.Artist)
	return nil
}

// List prints the library, optionally filtered and in CSV/Markdown/JSON.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	tracks, err := s.ListAll(ctx)
	if err != nil {
		return err
	}

	if query := cmd.String("search"); query != "" {
		tracks = models.FilterTracks(tracks, query)
	}

	switch {
	case cmd.Bool("csv"):
		out, err := formatter.ExportToCSV(tracks)
		if err != nil {
			return err
		}
		_, err = r.output.Write(out)
		return err
	case cmd.Bool("markdown"):
		_, err = r.output.Write(formatter.ExportToMarkdown(tracks))
		return err
	case cmd.Bool("json"):
		return r.writeJSON(tracks, true)
	}

	for _, t := range tracks {
		fmt.Fprintf(r.output, "%s  %-30s %-20s %-8s %s\n",
			t.ID, t.Title, t.Artist, t.Category, formatter.FormatDuration(t.Duration))
	}
	fmt.Fprintf(r.output, "%d tracks\n", len(tracks))
	return nil
}

// Update merges flag-provided changes into an existing track.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	var changes models.TrackChanges
	if cmd.IsSet("title") {
		v := cmd.String("title")
		changes.Title = &v
	}
	if cmd.IsSet("artist") {
		v := cmd.String("artist")
		changes.Artist = &v
	}
	if cmd.IsSet("description") {
		v := cmd.String("description")
		changes.Description = &v
	}
	if cmd.IsSet("category") {
		c, err := models.ParseCategory(cmd.String("category"))
		if err != nil {
			return err
		}
		changes.Category = &c
	}

	var audio, cover *models.Payload
	if path := cmd.String("audio"); path != "" {
		p, err := readPayload(path)
		if err != nil {
			return err
		}
		audio = &p
	}
	if path := cmd.String("cover"); path != "" {
		p, err := readPayload(path)
		if err != nil {
			return err
		}
		cover = &p
	}

	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	updated, err := s.Update(ctx, id, changes, audio, cover)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.output, "updated %s (%s — %s)\n", updated.ID, updated.Title, updated.Artist)
	return nil
}

// Delete removes a track and its payloads.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(r.output, "deleted %s\n", id)
	return nil
}

// Play streams one track through the speaker until it ends or the context is
// canceled, logging position once per second.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	device, err := player.NewBeepDevice(r.config.Player.SampleRate, r.config.Player.BufferMillis)
	if err != nil {
		return err
	}
	engine := player.NewEngine(device, s, s.Handles(), r.logger)
	defer engine.Close()

	engine.SetVolume(r.config.Player.InitialVolume)
	if err := engine.Load(ctx, id); err != nil {
		return err
	}

	statuses := engine.ObserveStatus()
	positions := engine.ObserveCurrentTime()
	for {
		select {
		case <-ctx.Done():
			engine.Stop()
			return ctx.Err()
		case status := <-statuses:
			if status == models.StatusStopped {
				return nil
			}
		case pos := <-positions:
			r.logger.Info("playing", "track", id, "position", formatter.FormatDuration(pos))
		case <-time.After(30 * time.Minute):
			return fmt.Errorf("playback watchdog expired")
		}
	}
}

// TUI launches the interactive terminal UI over the full engine stack.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/musicstream-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	s, closer, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	device, err := player.NewBeepDevice(r.config.Player.SampleRate, r.config.Player.BufferMillis)
	if err != nil {
		return err
	}
	engine := player.NewEngine(device, s, s.Handles(), r.logger)
	defer engine.Close()
	engine.SetVolume(r.config.Player.InitialVolume)

	dispatcher := state.NewDispatcher(s, engine, r.logger)
	defer dispatcher.Close()

	model := ui.NewModel(ctx, dispatcher)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	output = append(output, '\n')
	_, err = r.output.Write(output)
	return err
}

// readPayload loads a payload file, inferring the content type from the name.
func readPayload(path string) (models.Payload, error) {
	if path == "" {
		return models.Payload{}, fmt.Errorf("%w: payload path", shared.ErrMissingArgument)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to read payload: %w", err)
	}
	return models.Payload{Blob: blob, ContentType: contentTypeFor(path)}, nil
}
