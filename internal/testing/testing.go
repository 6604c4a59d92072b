// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/repositories"
	"github.com/desertthunder/quaver/internal/shared"
)

// MockTransport is a test double for [player.Transport]. It records every
// track handed to it and lets tests fire completion signals by hand.
type MockTransport struct {
	mu         sync.Mutex
	played     []library.Track
	current    *library.Track
	paused     bool
	stops      int
	unplayable map[string]bool
	done       chan struct{}
}

func NewMockTransport() *MockTransport {
	return &MockTransport{
		unplayable: map[string]bool{},
		done:       make(chan struct{}, 1),
	}
}

// FailPath marks a path so that Play returns [shared.ErrUnplayable] for it.
func (m *MockTransport) FailPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unplayable[path] = true
}

func (m *MockTransport) Play(track library.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unplayable[track.Path] {
		return fmt.Errorf("%w: %s", shared.ErrUnplayable, track.Path)
	}
	m.played = append(m.played, track)
	m.current = &track
	m.paused = false
	return nil
}

func (m *MockTransport) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	m.current = nil
	select {
	case <-m.done:
	default:
	}
}

func (m *MockTransport) Pause(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
}

func (m *MockTransport) Done() <-chan struct{} {
	return m.done
}

func (m *MockTransport) Position() time.Duration { return 0 }
func (m *MockTransport) Duration() time.Duration { return 0 }

// Complete simulates the current source draining.
func (m *MockTransport) Complete() {
	select {
	case m.done <- struct{}{}:
	default:
	}
}

// Played returns a copy of every track successfully started, in order.
func (m *MockTransport) Played() []library.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]library.Track, len(m.played))
	copy(out, m.played)
	return out
}

// Current returns the track the transport believes is playing, if any.
func (m *MockTransport) Current() (library.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return library.Track{}, false
	}
	return *m.current, true
}

// Stops returns how many times Stop was called.
func (m *MockTransport) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// Paused reports the last pause state set through the transport.
func (m *MockTransport) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockTrackCache is a test double for the scan engine's cache dependency.
type MockTrackCache struct {
	mu       sync.Mutex
	Replaced [][]library.Track
	Records  []repositories.ScanRecord
	Err      error
}

func (m *MockTrackCache) ReplaceAll(tracks []library.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	snapshot := make([]library.Track, len(tracks))
	copy(snapshot, tracks)
	m.Replaced = append(m.Replaced, snapshot)
	return nil
}

func (m *MockTrackCache) RecordScan(rec repositories.ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, rec)
	return nil
}

// SetupTestDB creates an in-memory SQLite database with migrations applied.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// Tracks builds n distinct tracks for queue and search tests.
func Tracks(n int) []library.Track {
	tracks := make([]library.Track, n)
	for i := range tracks {
		tracks[i] = library.Track{
			Path:     fmt.Sprintf("/music/track-%02d.mp3", i),
			Title:    fmt.Sprintf("Track %02d", i),
			Artist:   fmt.Sprintf("Artist %d", i%3),
			Album:    fmt.Sprintf("Album %d", i%2),
			Duration: 60 + i,
		}
	}
	return tracks
}
