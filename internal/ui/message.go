package ui

import (
	"time"

	"github.com/desertthunder/quaver/internal/tasks"
)

// tickMsg fires once per UI tick and drives the incremental search poll and
// status refresh.
type tickMsg time.Time

// trackFinishedMsg reports that the transport drained one source. The
// update loop feeds it to the queue; this is the only path by which a
// completion mutates playback state.
type trackFinishedMsg struct{}

// libraryChangedMsg reports settled filesystem activity under the library
// root.
type libraryChangedMsg struct{}

// rescanDoneMsg carries the outcome of a background library rescan.
type rescanDoneMsg struct {
	result *tasks.ScanRunResult
	err    error
}
