package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/quaver/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats prints the state of the track cache: track count and the most
// recent scan record.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := cache.Count()
	if err != nil {
		return fmt.Errorf("failed to count cached tracks: %w", err)
	}

	r.writePlainHeader("Track Cache")
	r.writePlain("Tracks: %d\n", count)

	scan, err := cache.LastScan()
	if errors.Is(err, shared.ErrCacheMiss) {
		r.writePlain("No scans recorded. Run 'quaver scan' first.\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read scan history: %w", err)
	}

	r.writePlain("Last scan: %s\n", scan.FinishedAt.Format("2006-01-02 15:04:05"))
	r.writePlain("  Root:    %s\n", scan.Root)
	r.writePlain("  Tracks:  %d (skipped %d)\n", scan.TrackCount, scan.SkippedCount)
	return nil
}

// CacheClear removes every cached track.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("track cache cleared")
	r.writePlain("✓ Track cache cleared\n")
	return nil
}

// cacheCommand handles track cache inspection and maintenance
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and maintain the track cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cached track count and last scan",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached tracks",
				Action: r.CacheClear,
			},
		},
	}
}
