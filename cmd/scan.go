package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/quaver/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Scan walks the library root, probes tags and refreshes the track cache.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	root, err := r.libraryRoot(cmd.String("root"))
	if err != nil {
		return err
	}

	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := r.scanEngine(cache)

	progress := make(chan tasks.ProgressUpdate)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Phase.String(), "message", update.Message)
		}
	}()

	result, err := engine.Run(ctx, root, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	r.writePlainHeader("Library Scan")
	r.writePlain("Root:    %s\n", root)
	r.writePlain("Tracks:  %d\n", result.TrackCount)
	r.writePlain("Skipped: %d (filename metadata only)\n", result.SkippedCount)
	r.writePlain("Elapsed: %s\n", result.Elapsed)
	return nil
}

// scanCommand handles library scans
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan the music library and refresh the track cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Library root to scan (overrides config)",
			},
		},
		Action: r.Scan,
	}
}
