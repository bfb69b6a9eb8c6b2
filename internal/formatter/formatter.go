// package formatter provides functions to export the library to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rayane20777/MusicStream/internal/models"
)

// ExportToCSV converts a track collection to CSV format with columns: ID, Title, Artist, Category, Duration, Added
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Category", "Duration", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			string(track.Category),
			strconv.FormatFloat(track.Duration, 'f', -1, 64),
			track.AddedDate.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a track collection to a Markdown table.
func ExportToMarkdown(tracks []models.Track) []byte {
	var b strings.Builder

	b.WriteString("# Library\n\n")
	b.WriteString(fmt.Sprintf("%d tracks\n\n", len(tracks)))
	b.WriteString("| Title | Artist | Category | Duration |\n")
	b.WriteString("|---|---|---|---|\n")

	for _, track := range tracks {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			track.Title, track.Artist, track.Category, FormatDuration(track.Duration)))
	}

	return []byte(b.String())
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
