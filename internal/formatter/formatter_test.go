package formatter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Rayane20777/MusicStream/internal/models"
)

func sampleTracks() []models.Track {
	added := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return []models.Track{
		{ID: "t1", Title: "Kind of Blue", Artist: "Miles Davis", Category: models.CategoryRock, Duration: 325, AddedDate: added},
		{ID: "t2", Title: "Aicha, Live", Artist: "Khaled", Category: models.CategoryCha3bi, Duration: 61, AddedDate: added},
	}
}

func TestExportToCSV(t *testing.T) {
	out, err := ExportToCSV(sampleTracks())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][5] != "Added" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Kind of Blue" || records[1][4] != "325" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	// Commas inside fields survive the round trip.
	if records[2][1] != "Aicha, Live" {
		t.Errorf("expected quoted title to round-trip, got %q", records[2][1])
	}
	if records[1][5] != "2026-03-14T09:00:00Z" {
		t.Errorf("expected RFC3339 added date, got %s", records[1][5])
	}
}

func TestExportToMarkdown(t *testing.T) {
	out := string(ExportToMarkdown(sampleTracks()))

	if !strings.Contains(out, "# Library") {
		t.Error("expected a document heading")
	}
	if !strings.Contains(out, "2 tracks") {
		t.Error("expected a track count")
	}
	if !strings.Contains(out, "| Kind of Blue | Miles Davis | rock | 5:25 |") {
		t.Errorf("expected a formatted table row, got:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{61, "1:01"},
		{325, "5:25"},
		{3600, "60:00"},
		{89.7, "1:29"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%f) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
