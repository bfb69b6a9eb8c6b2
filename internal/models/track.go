package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rayane20777/MusicStream/internal/shared"
)

// MusicCategory enumerates the supported track categories.
type MusicCategory string

const (
	CategoryPop    MusicCategory = "pop"
	CategoryRock   MusicCategory = "rock"
	CategoryRap    MusicCategory = "rap"
	CategoryCha3bi MusicCategory = "cha3bi"
)

// Categories lists every valid [MusicCategory].
var Categories = []MusicCategory{CategoryPop, CategoryRock, CategoryRap, CategoryCha3bi}

// ParseCategory converts a string into a [MusicCategory], case-insensitively.
func ParseCategory(s string) (MusicCategory, error) {
	c := MusicCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", shared.ErrValidation, s)
}

const (
	maxTitleLen       = 50
	maxDescriptionLen = 200
)

// Track is a metadata record describing one piece of music plus references to
// its binary payloads. AudioHandle and CoverHandle are session-local paths
// resolved by the handle manager; they are empty until resolution and never
// persisted.
type Track struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Description string        `json:"description,omitempty"`
	Duration    float64       `json:"duration"`
	Category    MusicCategory `json:"category"`
	AddedDate   time.Time     `json:"addedDate"`
	AudioHandle string        `json:"audioHandle,omitempty"`
	CoverHandle string        `json:"coverHandle,omitempty"`
}

// Validate checks the track's field constraints.
func (t Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if utf8.RuneCountInString(t.Title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", shared.ErrValidation, maxTitleLen)
	}
	if strings.TrimSpace(t.Artist) == "" {
		return fmt.Errorf("%w: artist is required", shared.ErrValidation)
	}
	if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", shared.ErrValidation, maxDescriptionLen)
	}
	if t.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0", shared.ErrValidation)
	}
	if _, err := ParseCategory(string(t.Category)); err != nil {
		return err
	}
	return nil
}

// TrackChanges carries a partial update: nil fields are retained from the
// stored record, non-nil fields replace it.
type TrackChanges struct {
	Title       *string
	Artist      *string
	Description *string
	Duration    *float64
	Category    *MusicCategory
}

// Apply merges the changes into a copy of the given track.
func (c TrackChanges) Apply(t Track) Track {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Artist != nil {
		t.Artist = *c.Artist
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Duration != nil {
		t.Duration = *c.Duration
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
	return t
}

// Payload holds raw audio or cover bytes owned by exactly one track.
type Payload struct {
	ID          string
	Blob        []byte
	ContentType string
}

// Empty reports whether the payload carries no content.
func (p Payload) Empty() bool {
	return len(p.Blob) == 0
}
