package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/shared"
)

// TrackCacheRepository persists scanned tracks in the SQLite library cache.
type TrackCacheRepository struct {
	db *sql.DB
}

// NewTrackCacheRepository creates a TrackCacheRepository with the given database connection
func NewTrackCacheRepository(db *sql.DB) *TrackCacheRepository {
	return &TrackCacheRepository{db: db}
}

// ReplaceAll atomically replaces the cached library with tracks, preserving
// their order. A failed replace leaves the previous cache intact.
func (r *TrackCacheRepository) ReplaceAll(tracks []library.Track) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear track cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tracks (path, title, artist, album, duration, position, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, t := range tracks {
		if _, err := stmt.Exec(t.Path, t.Title, t.Artist, t.Album, t.Duration, i, now); err != nil {
			return fmt.Errorf("failed to insert track %s: %w", t.Path, err)
		}
	}

	return tx.Commit()
}

// All returns every cached track in scan order.
func (r *TrackCacheRepository) All() ([]library.Track, error) {
	rows, err := r.db.Query(`
		SELECT path, title, artist, album, duration
		FROM tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query track cache: %w", err)
	}
	defer rows.Close()

	var tracks []library.Track
	for rows.Next() {
		var t library.Track
		if err := rows.Scan(&t.Path, &t.Title, &t.Artist, &t.Album, &t.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, rows.Err()
}

// Get retrieves a single cached track by path.
func (r *TrackCacheRepository) Get(path string) (library.Track, error) {
	var t library.Track
	err := r.db.QueryRow(`
		SELECT path, title, artist, album, duration
		FROM tracks
		WHERE path = ?
	`, path).Scan(&t.Path, &t.Title, &t.Artist, &t.Album, &t.Duration)
	if errors.Is(err, sql.ErrNoRows) {
		return library.Track{}, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, path)
	}
	if err != nil {
		return library.Track{}, fmt.Errorf("failed to get track %s: %w", path, err)
	}
	return t, nil
}

// Count returns the number of cached tracks.
func (r *TrackCacheRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// Clear removes every cached track.
func (r *TrackCacheRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear track cache: %w", err)
	}
	return nil
}

// ScanRecord describes one completed library scan.
type ScanRecord struct {
	ID           string
	Root         string
	TrackCount   int
	SkippedCount int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RecordScan stores bookkeeping for a completed scan.
func (r *TrackCacheRepository) RecordScan(rec ScanRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO scans (id, root, track_count, skipped_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Root, rec.TrackCount, rec.SkippedCount, rec.StartedAt, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	return nil
}

// LastScan returns the most recent scan record, or [shared.ErrCacheMiss] if
// the library has never been scanned.
func (r *TrackCacheRepository) LastScan() (ScanRecord, error) {
	var rec ScanRecord
	err := r.db.QueryRow(`
		SELECT id, root, track_count, skipped_count, started_at, finished_at
		FROM scans
		ORDER BY finished_at DESC
		LIMIT 1
	`).Scan(&rec.ID, &rec.Root, &rec.TrackCount, &rec.SkippedCount, &rec.StartedAt, &rec.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ScanRecord{}, fmt.Errorf("%w: no scans recorded", shared.ErrCacheMiss)
	}
	if err != nil {
		return ScanRecord{}, fmt.Errorf("failed to get last scan: %w", err)
	}
	return rec, nil
}
