package library

import (
	"path/filepath"

	"github.com/desertthunder/quaver/internal/shared"
)

// Track represents one library entry: a path plus display fields cached at
// import time. The zero value is not a valid track; use [TrackFromFile] or
// the cache repository to construct one.
//
// Tracks are plain values. Copying one is cheap and the copy never goes
// stale because no field is mutated after creation.
type Track struct {
	Path     string // Unique identifier within the library
	Title    string // Title tag, may be empty
	Artist   string // Artist tag, may be empty
	Album    string // Album tag, may be empty
	Duration int    // Length in whole seconds, 0 if unknown
}

// Equal reports whether two tracks identify the same library entry.
// Identity is by path alone; tag fields are ignored.
func (t Track) Equal(other Track) bool {
	return t.Path == other.Path
}

// DisplayTitle returns the title tag, falling back to the file's base name
// when the tag is empty.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

// DisplayArtist returns the artist tag, or an empty string.
func (t Track) DisplayArtist() string {
	return t.Artist
}

// DisplayAlbum returns the album tag, or an empty string.
func (t Track) DisplayAlbum() string {
	return t.Album
}

// DisplayDuration renders the track length as m:ss.
func (t Track) DisplayDuration() string {
	return shared.FormatDuration(t.Duration)
}
