package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/desertthunder/quaver/internal/library"
)

func exportTracks() []library.Track {
	return []library.Track{
		{Path: "/m/one.mp3", Title: "Song One", Artist: "Artist One", Album: "Album One", Duration: 180},
		{Path: "/m/two.mp3", Title: "Song Two", Artist: "Artist Two", Duration: 241},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		out, err := ExportToCSV(exportTracks())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d records", len(records))
		}
		if records[0][0] != "Path" || records[0][4] != "Duration" {
			t.Errorf("unexpected header: %v", records[0])
		}
		if records[1][1] != "Song One" || records[1][4] != "180" {
			t.Errorf("unexpected first row: %v", records[1])
		}
		if records[2][3] != "" {
			t.Errorf("expected empty album cell, got %q", records[2][3])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		out := string(ExportToMarkdown("/music", exportTracks()))

		if !strings.Contains(out, "# Library: /music") {
			t.Error("expected document title with the library root")
		}
		if !strings.Contains(out, "**Tracks**: 2") {
			t.Error("expected track count line")
		}
		if !strings.Contains(out, "1. Artist One - Song One (Album One) [3:00]") {
			t.Errorf("unexpected first entry in:\n%s", out)
		}
		if strings.Contains(out, "Song Two (") {
			t.Error("expected no album parenthetical for an untagged album")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		out := string(ExportToText("/music", exportTracks()))

		if !strings.Contains(out, "Library: /music") {
			t.Error("expected header with the library root")
		}
		if !strings.Contains(out, "2. Artist Two - Song Two [4:01]") {
			t.Errorf("unexpected second entry in:\n%s", out)
		}
	})

	t.Run("empty listings still produce headers", func(t *testing.T) {
		out, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(string(out), "Path,Title,Artist,Album,Duration") {
			t.Errorf("expected header row, got %q", string(out))
		}

		text := string(ExportToText("/music", nil))
		if !strings.Contains(text, "Tracks: 0") {
			t.Errorf("expected zero count, got:\n%s", text)
		}
	})
}
