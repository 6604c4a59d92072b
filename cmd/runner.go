package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/player"
	"github.com/desertthunder/quaver/internal/repositories"
	"github.com/desertthunder/quaver/internal/shared"
	"github.com/desertthunder/quaver/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	scanner   *library.Scanner
	transport player.Transport
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Scanner   *library.Scanner
	Transport player.Transport
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Transport == nil {
		opts.Transport = player.NewBeepTransport(
			opts.Config.Audio.SampleRate,
			time.Duration(opts.Config.Audio.BufferMillis)*time.Millisecond,
			opts.Logger,
		)
	}
	if opts.Scanner == nil {
		opts.Scanner = library.NewScanner(opts.Config.Library.Extensions, player.ProbeDuration, opts.Logger)
	}

	return &Runner{
		config:    opts.Config,
		scanner:   opts.Scanner,
		transport: opts.Transport,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, scanCommand, cacheCommand, exportCommand, playCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// libraryRoot resolves the directory to scan: flag first, then config,
// then the platform music directory.
func (r *Runner) libraryRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if r.config.Library.Root != "" {
		return r.config.Library.Root, nil
	}
	root, err := shared.MusicDir()
	if err != nil {
		return "", fmt.Errorf("%w: no library root configured and %v", shared.ErrMissingConfig, err)
	}
	return root, nil
}

// openCache opens the track cache database at the configured path, falling
// back to the per-user cache directory.
func (r *Runner) openCache() (*sql.DB, *repositories.TrackCacheRepository, error) {
	path := r.config.Database.Path
	if path == "" {
		var err error
		if path, err = shared.CacheDatabasePath(); err != nil {
			return nil, nil, err
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewTrackCacheRepository(db), nil
}

// scanEngine builds a scan engine over the runner's scanner and the given cache.
func (r *Runner) scanEngine(cache tasks.TrackCache) *tasks.ScanEngine {
	return tasks.NewScanEngine(r.scanner, cache)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// SetLogger swaps the runner's logger, e.g. to redirect logs to a file
// while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}
