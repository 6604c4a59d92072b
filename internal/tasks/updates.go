package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 if unknown
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	WalkLibrary Phase = iota
	ProbeTags
	WriteCache
	ScanDone
)

func (p Phase) String() string {
	switch p {
	case WalkLibrary:
		return "walk_library"
	case ProbeTags:
		return "probe_tags"
	case WriteCache:
		return "write_cache"
	case ScanDone:
		return "scan_done"
	default:
		return ""
	}
}

func walkLibraryUpdate(root string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WalkLibrary,
		Message: fmt.Sprintf("Scanning %s...", root),
	}
}

func probeTagsUpdate(found, skipped int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProbeTags,
		Step:    found,
		Message: fmt.Sprintf("Found %d tracks (%d without readable tags)", found, skipped),
	}
}

func writeCacheUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCache,
		Total:   total,
		Message: fmt.Sprintf("Caching %d tracks...", total),
	}
}

func scanDoneUpdate(result *ScanRunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanDone,
		Step:    result.TrackCount,
		Total:   result.TrackCount,
		Message: fmt.Sprintf("Scan complete: %d tracks in %s", result.TrackCount, result.Elapsed.Round(timeRounding)),
		Data:    result,
	}
}
