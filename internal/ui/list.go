package ui

import (
	"fmt"

	"github.com/Rayane20777/MusicStream/internal/formatter"
	"github.com/Rayane20777/MusicStream/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Title, i.track.Artist)
}

func (i trackItem) Title() string { return i.track.Title }

func (i trackItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.track.Artist, i.track.Category)
	if i.track.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, formatter.FormatDuration(i.track.Duration))
	}
	return desc
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}
