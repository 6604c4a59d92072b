package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testTracks() []library.Track {
	return []library.Track{
		{Path: "/m/a.mp3", Title: "Alpha", Artist: "Artist A", Album: "First", Duration: 120},
		{Path: "/m/b.mp3", Title: "Beta", Artist: "Artist B", Album: "First", Duration: 241},
		{Path: "/m/c.mp3", Title: "Gamma", Artist: "Artist A", Album: "Second", Duration: 95},
	}
}

func TestTrackCacheRepository(t *testing.T) {
	t.Run("ReplaceAll and All round-trip in scan order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		tracks := testTracks()

		if err := repo.ReplaceAll(tracks); err != nil {
			t.Fatalf("failed to replace tracks: %v", err)
		}

		cached, err := repo.All()
		if err != nil {
			t.Fatalf("failed to read cache: %v", err)
		}
		if len(cached) != len(tracks) {
			t.Fatalf("expected %d tracks, got %d", len(tracks), len(cached))
		}
		for i, track := range tracks {
			if cached[i] != track {
				t.Errorf("position %d: expected %+v, got %+v", i, track, cached[i])
			}
		}
	})

	t.Run("ReplaceAll discards the previous cache", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		if err := repo.ReplaceAll(testTracks()); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		replacement := []library.Track{{Path: "/m/new.mp3", Title: "New"}}
		if err := repo.ReplaceAll(replacement); err != nil {
			t.Fatalf("failed to replace cache: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 track after replace, got %d", count)
		}
	})

	t.Run("Get retrieves by path", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		if err := repo.ReplaceAll(testTracks()); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		track, err := repo.Get("/m/b.mp3")
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}
		if track.Title != "Beta" || track.Duration != 241 {
			t.Errorf("unexpected track: %+v", track)
		}
	})

	t.Run("Get on a missing path returns ErrTrackNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		_, err := repo.Get("/m/missing.mp3")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})

	t.Run("Clear empties the cache", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		if err := repo.ReplaceAll(testTracks()); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear cache: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty cache, got %d tracks", count)
		}
	})
}

func TestScanRecords(t *testing.T) {
	t.Run("LastScan without history returns ErrCacheMiss", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		_, err := repo.LastScan()
		if !errors.Is(err, shared.ErrCacheMiss) {
			t.Errorf("expected ErrCacheMiss, got %v", err)
		}
	})

	t.Run("LastScan returns the most recent record", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackCacheRepository(db)
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		records := []ScanRecord{
			{ID: "scan-1", Root: "/music", TrackCount: 10, StartedAt: base, FinishedAt: base.Add(time.Minute)},
			{ID: "scan-2", Root: "/music", TrackCount: 12, SkippedCount: 1, StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + time.Minute)},
		}
		for _, rec := range records {
			if err := repo.RecordScan(rec); err != nil {
				t.Fatalf("failed to record scan: %v", err)
			}
		}

		last, err := repo.LastScan()
		if err != nil {
			t.Fatalf("failed to get last scan: %v", err)
		}
		if last.ID != "scan-2" {
			t.Errorf("expected scan-2, got %s", last.ID)
		}
		if last.TrackCount != 12 || last.SkippedCount != 1 {
			t.Errorf("unexpected record: %+v", last)
		}
	})
}
