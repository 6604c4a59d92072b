package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/quaver/internal/library"
)

var _ list.Item = trackItem{}

// trackItem wraps [library.Track] to implement [list.Item].
type trackItem struct {
	track library.Track
}

func (i trackItem) FilterValue() string { return i.track.DisplayTitle() }
func (i trackItem) Title() string       { return i.track.DisplayTitle() }
func (i trackItem) Description() string {
	desc := i.track.DisplayArtist()
	if desc == "" {
		desc = "Unknown artist"
	}
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return fmt.Sprintf("%s • %s", desc, i.track.DisplayDuration())
}

// trackItems converts a result slice into list items.
func trackItems(tracks []library.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}
