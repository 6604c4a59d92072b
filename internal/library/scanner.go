package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"

	"github.com/desertthunder/quaver/internal/shared"
)

// DefaultExtensions lists the file extensions the scanner recognizes when
// the config doesn't override them.
var DefaultExtensions = []string{".mp3", ".wav", ".flac"}

// DurationFunc reports the length of an audio file in whole seconds.
// Implementations typically decode the file header; returning 0 means unknown.
type DurationFunc func(path string) int

// Scanner walks a library root and builds [Track] values from file tags.
type Scanner struct {
	extensions []string
	duration   DurationFunc
	logger     *log.Logger
}

// NewScanner creates a Scanner. extensions defaults to [DefaultExtensions],
// duration may be nil (track lengths are then left at 0), and logger may be
// nil to discard scan diagnostics.
func NewScanner(extensions []string, duration DurationFunc, logger *log.Logger) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
		shared.SetLogLevel(logger, log.FatalLevel)
	}
	return &Scanner{extensions: extensions, duration: duration, logger: logger}
}

// Scan walks root and returns one Track per recognized audio file, in
// directory-walk order. Files whose tags cannot be read still produce a
// Track with display fields derived from the filename; skipped counts how
// many of those fell back.
func (s *Scanner) Scan(root string) ([]Track, int, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, 0, fmt.Errorf("%w: %s", shared.ErrLibraryNotFound, root)
	}

	var tracks []Track
	skipped := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !s.recognized(path) {
			return nil
		}

		track, ok := s.readTrack(path)
		if !ok {
			skipped++
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk library root: %w", err)
	}

	return tracks, skipped, nil
}

func (s *Scanner) recognized(path string) bool {
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(path)))
}

// readTrack builds a Track from the file's tags. The second return value is
// false when the tags could not be read and the track only carries
// filename-derived fields.
func (s *Scanner) readTrack(path string) (Track, bool) {
	track := Track{Path: path}
	if s.duration != nil {
		track.Duration = s.duration(path)
	}

	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("failed to open file for tag probe", "path", path, "error", err)
		return track, false
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		s.logger.Debug("no readable tags", "path", path, "error", err)
		return track, false
	}

	track.Title = meta.Title()
	track.Artist = meta.Artist()
	track.Album = meta.Album()
	return track, true
}
