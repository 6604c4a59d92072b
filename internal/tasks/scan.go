// package tasks implements the library scan pipeline.
//
// The core abstraction is ScanEngine, which walks the library root, probes
// tags, and refreshes the sqlite cache. Operations emit progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/repositories"
	"github.com/desertthunder/quaver/internal/shared"
)

const timeRounding = 10 * time.Millisecond

// ScanRunResult contains all data from a full library scan.
type ScanRunResult struct {
	Tracks       []library.Track // Everything the scanner found, in walk order
	TrackCount   int             // Number of tracks imported
	SkippedCount int             // Files imported with filename-only metadata
	Elapsed      time.Duration   // Wall time for the whole scan
}

// TrackCache is the slice of the cache repository the engine needs.
// Abstracted for testing.
type TrackCache interface {
	ReplaceAll(tracks []library.Track) error
	RecordScan(rec repositories.ScanRecord) error
}

// ScanEngine orchestrates library scans: filesystem walk, tag probing, and
// cache refresh.
type ScanEngine struct {
	scanner *library.Scanner
	cache   TrackCache
}

// NewScanEngine creates a ScanEngine. cache may be nil, in which case scan
// results are returned but not persisted.
func NewScanEngine(scanner *library.Scanner, cache TrackCache) *ScanEngine {
	return &ScanEngine{scanner: scanner, cache: cache}
}

// Run performs a full scan of root, sending updates on progress (if non-nil)
// as phases complete. The caller owns the progress channel; Run never
// closes it.
func (e *ScanEngine) Run(ctx context.Context, root string, progress chan<- ProgressUpdate) (*ScanRunResult, error) {
	started := time.Now()
	send(progress, walkLibraryUpdate(root))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracks, skipped, err := e.scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("library scan failed: %w", err)
	}
	send(progress, probeTagsUpdate(len(tracks), skipped))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.cache != nil {
		send(progress, writeCacheUpdate(len(tracks)))
		if err := e.cache.ReplaceAll(tracks); err != nil {
			return nil, fmt.Errorf("failed to refresh library cache: %w", err)
		}

		rec := repositories.ScanRecord{
			ID:           shared.GenerateID(),
			Root:         root,
			TrackCount:   len(tracks),
			SkippedCount: skipped,
			StartedAt:    started,
			FinishedAt:   time.Now(),
		}
		if err := e.cache.RecordScan(rec); err != nil {
			return nil, fmt.Errorf("failed to record scan: %w", err)
		}
	}

	result := &ScanRunResult{
		Tracks:       tracks,
		TrackCount:   len(tracks),
		SkippedCount: skipped,
		Elapsed:      time.Since(started),
	}
	send(progress, scanDoneUpdate(result))
	return result, nil
}

// send delivers an update without blocking a caller that supplied no
// channel.
func send(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress != nil {
		progress <- update
	}
}
