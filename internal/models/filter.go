package models

import "strings"

// FilterTracks returns the tracks whose title or artist contains the query,
// compared case-insensitively.
func FilterTracks(tracks []Track, query string) []Track {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tracks
	}

	var matched []Track
	for _, t := range tracks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Artist), q) {
			matched = append(matched, t)
		}
	}
	return matched
}
