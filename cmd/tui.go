package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/player"
	"github.com/desertthunder/quaver/internal/search"
	"github.com/desertthunder/quaver/internal/shared"
	"github.com/desertthunder/quaver/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive player.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	root, err := r.libraryRoot(cmd.String("root"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := "./tmp/quaver-tui.log"
	if cacheDir, err := shared.CacheDir(); err == nil {
		logPath = filepath.Join(cacheDir, "tui.log")
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := r.scanEngine(cache)

	tracks, err := cache.All()
	if err != nil {
		return fmt.Errorf("failed to read track cache: %w", err)
	}
	if len(tracks) == 0 || cmd.Bool("rescan") {
		r.logger.Info("scanning library", "root", root)
		result, err := engine.Run(ctx, root, nil)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		tracks = result.Tracks
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: nothing playable under %s", shared.ErrEmptyLibrary, root)
	}

	queue := player.NewQueue(r.transport, r.logger)
	queue.SetRepeatMode(player.RepeatOff)

	searchEngine := search.NewEngine(r.config.Search.PollQuantum)

	var watcher *library.Watcher
	if r.config.Library.Watch {
		if watcher, err = library.NewWatcher(root, 0, r.logger); err != nil {
			r.logger.Warn("library watching disabled", "error", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	model := ui.NewModel(ui.ModelOpts{
		Ctx:        ctx,
		Queue:      queue,
		Transport:  r.transport,
		Engine:     searchEngine,
		ScanEngine: engine,
		Root:       root,
		Watcher:    watcher,
		Tracks:     tracks,
		Theme:      r.config.Theme,
		Logger:     r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// playCommand launches the terminal player
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui"},
		Usage:   "Browse, search and play the library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Library root (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "rescan",
				Usage: "Rescan the library before starting",
			},
		},
		Action: r.Play,
	}
}
