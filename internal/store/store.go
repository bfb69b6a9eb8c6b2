package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// MediaStore persists track metadata together with audio and cover payloads.
//
// Every public operation maps to exactly one transaction spanning the
// collections it touches. Concurrent operations on different track IDs may
// interleave freely; same-ID operations are last-committed-wins.
type MediaStore struct {
	db      *sql.DB
	handles *HandleManager
	logger  *log.Logger

	mu    sync.Mutex
	ready bool
}

// NewMediaStore creates a MediaStore over an open database connection.
// Initialize must run before any other operation.
func NewMediaStore(db *sql.DB, handles *HandleManager, logger *log.Logger) *MediaStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MediaStore{db: db, handles: handles, logger: logger}
}

// Initialize provisions the three collections at the current schema version.
// Safe to call more than once; later calls are no-ops.
func (s *MediaStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	if err := shared.RunMigrations(s.db); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}

	version, err := shared.SchemaVersion(s.db)
	if err != nil {
		return err
	}
	s.logger.Info("media store initialized", "schema_version", version)

	s.ready = true
	return nil
}

// Handles exposes the handle manager so callers can release handles they were
// issued.
func (s *MediaStore) Handles() *HandleManager {
	return s.handles
}

func (s *MediaStore) checkReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return shared.ErrStoreNotReady
	}
	return nil
}

// ListAll reads every metadata record in insertion order and resolves each
// record's payloads into fresh handles. Records with a missing payload get an
// empty handle instead of failing the read. The result is a materialized
// snapshot, not a live view.
func (s *MediaStore) ListAll(ctx context.Context) ([]models.Track, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, artist, description, duration, category, added_date
		FROM tracks
		ORDER BY added_date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range tracks {
		audio, err := fetchPayload(ctx, tx, "audio_files", tracks[i].ID)
		if err != nil {
			return nil, err
		}
		cover, err := fetchPayload(ctx, tx, "cover_images", tracks[i].ID)
		if err != nil {
			return nil, err
		}

		// Resolve both handles concurrently; a missing payload resolves
		// to an empty handle.
		g, _ := errgroup.WithContext(ctx)
		idx := i
		g.Go(func() error {
			h, err := s.handles.Resolve(audio)
			tracks[idx].AudioHandle = h
			return err
		})
		g.Go(func() error {
			h, err := s.handles.Resolve(cover)
			tracks[idx].CoverHandle = h
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return tracks, nil
}

// Add generates a new unique ID, writes metadata and the audio payload in one
// transaction, and writes the cover payload when supplied. The returned track
// carries no resolved handles; resolution happens on the next ListAll.
//
// When the caller supplies no duration, the audio payload is probed for one;
// unparseable payloads keep 0 until first playback reports the authoritative
// value.
func (s *MediaStore) Add(ctx context.Context, track models.Track, audio models.Payload, cover *models.Payload) (models.Track, error) {
	if err := s.checkReady(); err != nil {
		return models.Track{}, err
	}

	track.ID = shared.GenerateTrackID()
	track.AddedDate = time.Now()
	track.AudioHandle = ""
	track.CoverHandle = ""
	if track.Duration == 0 {
		track.Duration = s.probeDuration(audio)
	}

	if err := track.Validate(); err != nil {
		return models.Track{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Track{}, fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tracks (id, title, artist, description, duration, category, added_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, track.ID, track.Title, track.Artist, track.Description, track.Duration, track.Category, track.AddedDate)
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to insert track: %w", err)
	}

	if err := putPayload(ctx, tx, "audio_files", track.ID, audio); err != nil {
		return models.Track{}, err
	}
	if cover != nil && !cover.Empty() {
		if err := putPayload(ctx, tx, "cover_images", track.ID, *cover); err != nil {
			return models.Track{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Track{}, fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}

	s.logger.Info("track added", "id", track.ID, "title", track.Title)
	return track, nil
}

// Update merges partial changes into an existing record and conditionally
// replaces its payloads, all in one transaction. A supplied audio payload
// yields a freshly resolved handle on the returned track; the caller releases
// any handle previously issued for the same track.
func (s *MediaStore) Update(ctx context.Context, id string, changes models.TrackChanges, audio, cover *models.Payload) (models.Track, error) {
	if err := s.checkReady(); err != nil {
		return models.Track{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Track{}, fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, title, artist, description, duration, category, added_date
		FROM tracks
		WHERE id = ?
	`, id)
	existing, err := scanTrack(row)
	if err != nil {
		return models.Track{}, err
	}

	merged := changes.Apply(existing)
	if audio != nil && !audio.Empty() && changes.Duration == nil {
		if d := s.probeDuration(*audio); d > 0 {
			merged.Duration = d
		}
	}
	if err := merged.Validate(); err != nil {
		return models.Track{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tracks
		SET title = ?, artist = ?, description = ?, duration = ?, category = ?
		WHERE id = ?
	`, merged.Title, merged.Artist, merged.Description, merged.Duration, merged.Category, id)
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to update track: %w", err)
	}

	if audio != nil && !audio.Empty() {
		if err := putPayload(ctx, tx, "audio_files", id, *audio); err != nil {
			return models.Track{}, err
		}
	}
	if cover != nil && !cover.Empty() {
		if err := putPayload(ctx, tx, "cover_images", id, *cover); err != nil {
			return models.Track{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Track{}, fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}

	if audio != nil && !audio.Empty() {
		payload := *audio
		payload.ID = id
		handle, err := s.handles.Resolve(payload)
		if err != nil {
			return models.Track{}, err
		}
		merged.AudioHandle = handle
	}

	s.logger.Info("track updated", "id", id)
	return merged, nil
}

// Delete removes the metadata record and both payload records in one
// transaction. Deleting an absent ID succeeds, so delete is idempotent. Live
// handles for the track are released.
func (s *MediaStore) Delete(ctx context.Context, id string) error {
	if err := s.checkReady(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tracks", "audio_files", "cover_images"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransaction, err)
	}

	s.handles.ReleaseTrack(id)
	s.logger.Info("track deleted", "id", id)
	return nil
}

// FetchAudioPayload resolves only the audio payload for playback, skipping
// the metadata read path. An absent payload returns an empty Payload and no
// error.
func (s *MediaStore) FetchAudioPayload(ctx context.Context, id string) (models.Payload, error) {
	if err := s.checkReady(); err != nil {
		return models.Payload{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT id, blob, content_type FROM audio_files WHERE id = ?", id)
	var p models.Payload
	if err := row.Scan(&p.ID, &p.Blob, &p.ContentType); err != nil {
		if err == sql.ErrNoRows {
			return models.Payload{}, nil
		}
		return models.Payload{}, fmt.Errorf("failed to fetch audio payload: %w", err)
	}
	return p, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(row scanner) (models.Track, error) {
	var (
		t        models.Track
		category string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Artist, &t.Description, &t.Duration, &category, &t.AddedDate)
	if err == sql.ErrNoRows {
		return models.Track{}, shared.ErrTrackNotFound
	}
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to scan track: %w", err)
	}
	t.Category = models.MusicCategory(category)
	return t, nil
}

func fetchPayload(ctx context.Context, tx *sql.Tx, table, id string) (models.Payload, error) {
	row := tx.QueryRowContext(ctx, "SELECT id, blob, content_type FROM "+table+" WHERE id = ?", id)
	var p models.Payload
	if err := row.Scan(&p.ID, &p.Blob, &p.ContentType); err != nil {
		if err == sql.ErrNoRows {
			return models.Payload{}, nil
		}
		return models.Payload{}, fmt.Errorf("failed to fetch payload from %s: %w", table, err)
	}
	return p, nil
}

func putPayload(ctx context.Context, tx *sql.Tx, table, id string, p models.Payload) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO `+table+` (id, blob, content_type) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, content_type = excluded.content_type
	`, id, p.Blob, p.ContentType)
	if err != nil {
		return fmt.Errorf("failed to write payload to %s: %w", table, err)
	}
	return nil
}
