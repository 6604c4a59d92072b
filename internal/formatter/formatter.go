// package formatter provides functions to export library listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/shared"
)

// ExportToCSV converts a track listing to CSV format with columns: Path, Title, Artist, Album, Duration
func ExportToCSV(tracks []library.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Path", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.Path,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
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

// ExportToMarkdown converts a track listing to a Markdown document titled with the library root
func ExportToMarkdown(root string, tracks []library.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Library: %s\n\n", root))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		duration := shared.FormatDuration(track.Duration)
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.DisplayArtist(), track.DisplayTitle(), albumPart, duration))
	}

	return buf.Bytes()
}

// ExportToText converts a track listing to plain text format
func ExportToText(root string, tracks []library.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Library: %s\n", root))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.DisplayArtist(), track.DisplayTitle(), track.DisplayDuration()))
	}

	return buf.Bytes()
}
