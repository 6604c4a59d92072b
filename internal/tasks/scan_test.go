package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/quaver/internal/library"
	tu "github.com/desertthunder/quaver/internal/testing"
)

func seedLibrary(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directories: %v", err)
		}
		if err := os.WriteFile(path, []byte("not real audio"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	return root
}

func TestScanEngine(t *testing.T) {
	t.Run("refreshes the cache and records the scan", func(t *testing.T) {
		root := seedLibrary(t, "a.mp3", "album/b.flac", "cover.jpg")
		cache := &tu.MockTrackCache{}
		engine := NewScanEngine(library.NewScanner(nil, nil, nil), cache)

		result, err := engine.Run(context.Background(), root, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TrackCount != 2 {
			t.Errorf("expected 2 tracks, got %d", result.TrackCount)
		}
		if result.SkippedCount != 2 {
			t.Errorf("expected 2 files with filename-only metadata, got %d", result.SkippedCount)
		}
		if len(cache.Replaced) != 1 {
			t.Fatalf("expected one cache refresh, got %d", len(cache.Replaced))
		}
		if len(cache.Replaced[0]) != 2 {
			t.Errorf("expected 2 cached tracks, got %d", len(cache.Replaced[0]))
		}
		if len(cache.Records) != 1 {
			t.Fatalf("expected one scan record, got %d", len(cache.Records))
		}
		rec := cache.Records[0]
		if rec.ID == "" {
			t.Error("expected a generated scan ID")
		}
		if rec.Root != root || rec.TrackCount != 2 || rec.SkippedCount != 2 {
			t.Errorf("unexpected scan record: %+v", rec)
		}
		if rec.FinishedAt.Before(rec.StartedAt) {
			t.Error("expected finished_at after started_at")
		}
	})

	t.Run("nil cache skips persistence", func(t *testing.T) {
		root := seedLibrary(t, "a.mp3")
		engine := NewScanEngine(library.NewScanner(nil, nil, nil), nil)

		result, err := engine.Run(context.Background(), root, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TrackCount != 1 {
			t.Errorf("expected 1 track, got %d", result.TrackCount)
		}
	})

	t.Run("emits progress updates in phase order", func(t *testing.T) {
		root := seedLibrary(t, "a.mp3")
		cache := &tu.MockTrackCache{}
		engine := NewScanEngine(library.NewScanner(nil, nil, nil), cache)

		progress := make(chan ProgressUpdate, 16)
		_, err := engine.Run(context.Background(), root, progress)
		close(progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		want := []Phase{WalkLibrary, ProbeTags, WriteCache, ScanDone}
		if len(phases) != len(want) {
			t.Fatalf("expected %d updates, got %v", len(want), phases)
		}
		for i, phase := range want {
			if phases[i] != phase {
				t.Errorf("update %d: expected %s, got %s", i, phase, phases[i])
			}
		}
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		root := seedLibrary(t, "a.mp3")
		cache := &tu.MockTrackCache{}
		engine := NewScanEngine(library.NewScanner(nil, nil, nil), cache)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := engine.Run(ctx, root, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(cache.Replaced) != 0 {
			t.Error("expected no cache writes after cancellation")
		}
	})

	t.Run("cache failure surfaces as an error", func(t *testing.T) {
		root := seedLibrary(t, "a.mp3")
		cacheErr := errors.New("disk full")
		cache := &tu.MockTrackCache{Err: cacheErr}
		engine := NewScanEngine(library.NewScanner(nil, nil, nil), cache)

		_, err := engine.Run(context.Background(), root, nil)
		if !errors.Is(err, cacheErr) {
			t.Errorf("expected the cache error, got %v", err)
		}
	})
}
