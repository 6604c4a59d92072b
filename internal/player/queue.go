package player

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/shared"
)

// Queue is the playback queue: an ordered sequence of tracks, a cursor, a
// repeat policy and the queued-next window, guarded as one unit together
// with the transport handle.
//
// cursor ranges over [0, len(entries)]; cursor == len(entries) means the
// queue is exhausted and nothing is playing.
type Queue struct {
	mu sync.Mutex

	entries         []library.Track
	cursor          int
	repeat          RepeatMode
	insertionOffset int
	paused          bool

	transport Transport
	logger    *log.Logger
}

// Snapshot is a read-only copy of the queue state for rendering.
type Snapshot struct {
	Tracks          []library.Track
	Cursor          int
	InsertionOffset int
	Repeat          RepeatMode
	Paused          bool
}

// NewQueue creates an empty queue bound to the given transport.
func NewQueue(transport Transport, logger *log.Logger) *Queue {
	if logger == nil {
		logger = shared.NewLogger(nil)
		shared.SetLogLevel(logger, log.FatalLevel)
	}
	return &Queue{transport: transport, logger: logger}
}

// Enqueue appends track to the queue. If the queue was exhausted, playback
// of the new entry starts immediately.
func (q *Queue) Enqueue(track library.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()

	wasExhausted := q.exhaustedLocked()
	q.entries = append(q.entries, track)
	if wasExhausted {
		q.cursor = len(q.entries) - 1
		q.startLocked(true)
	}
}

// EnqueueNext inserts track just after the queued-next window, ahead of the
// stable queue tail. If nothing is playing the track starts immediately; in
// that case no window is claimed, since the insert is consumed on the spot.
func (q *Queue) EnqueueNext(track library.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.exhaustedLocked() {
		q.entries = append(q.entries, track)
		q.cursor = len(q.entries) - 1
		q.insertionOffset = 0
		q.startLocked(false)
		return
	}

	pos := q.cursor + q.insertionOffset + 1
	if pos > len(q.entries) {
		pos = len(q.entries)
	}
	q.entries = slices.Insert(q.entries, pos, track)
	q.insertionOffset++
}

// Remove deletes the entry at index. Removing the playing entry stops the
// transport first, then re-derives the next playable entry in the same
// transition, so the cursor never points at a removed slot.
func (q *Queue) Remove(index int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.entries) {
		return fmt.Errorf("%w: %d", shared.ErrIndexOutOfRange, index)
	}

	removingCurrent := index == q.cursor
	if removingCurrent {
		// Discard any in-flight completion for the abandoned track before
		// touching the cursor, or a stale signal could double-advance.
		q.transport.Stop()
	}

	if index > q.cursor && index <= q.cursor+q.insertionOffset {
		q.insertionOffset--
	}
	q.entries = slices.Delete(q.entries, index, index+1)

	switch {
	case index < q.cursor:
		q.cursor--
	case removingCurrent:
		if q.cursor >= len(q.entries) {
			if q.repeat == RepeatQueue && len(q.entries) > 0 {
				q.cursor = 0
			} else {
				q.cursor = len(q.entries)
			}
		}
		if q.cursor < len(q.entries) {
			q.startLocked(true)
		} else {
			q.insertionOffset = 0
		}
	}

	return nil
}

// Skip is the explicit "next" command. Unlike a completion signal it always
// advances past the current track, even under RepeatSingle.
func (q *Queue) Skip() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return
	}
	q.transport.Stop()
	q.advanceLocked(true)
}

// OnTrackComplete is the completion transition, invoked once per naturally
// exhausted source by whoever pumps [Transport.Done]. It must not be called
// from inside the audio callback.
func (q *Queue) OnTrackComplete() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.exhaustedLocked() {
		// Stale signal; the track it belonged to is already gone.
		return
	}
	q.advanceLocked(false)
}

// Previous steps the cursor back one entry (stopping at the first) and
// restarts playback there from the beginning.
func (q *Queue) Previous() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return
	}
	q.transport.Stop()
	if q.cursor > 0 {
		q.cursor--
	}
	if q.cursor < len(q.entries) {
		q.startLocked(true)
	}
}

// SetRepeatMode changes the repeat policy. Pure state change; playback is
// not touched.
func (q *Queue) SetRepeatMode(mode RepeatMode) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.repeat = mode
}

// RepeatMode returns the current repeat policy.
func (q *Queue) RepeatMode() RepeatMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.repeat
}

// TogglePause flips the paused state of the current source and reports the
// new state.
func (q *Queue) TogglePause() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.exhaustedLocked() {
		return false
	}
	q.paused = !q.paused
	q.transport.Pause(q.paused)
	return q.paused
}

// NowPlaying returns the track at the cursor, or false if the queue is
// empty or exhausted.
func (q *Queue) NowPlaying() (library.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.exhaustedLocked() {
		return library.Track{}, false
	}
	return q.entries[q.cursor], true
}

// Snapshot returns a copy of the queue state for rendering.
func (q *Queue) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Snapshot{
		Tracks:          slices.Clone(q.entries),
		Cursor:          q.cursor,
		InsertionOffset: q.insertionOffset,
		Repeat:          q.repeat,
		Paused:          q.paused,
	}
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) exhaustedLocked() bool {
	return q.cursor >= len(q.entries)
}

// advanceLocked applies the repeat-policy state machine. explicit is true
// for user skips, false for completion signals; the two differ only under
// RepeatSingle.
func (q *Queue) advanceLocked(explicit bool) {
	if q.repeat == RepeatSingle && !explicit {
		q.startLocked(false)
		return
	}

	q.cursor++
	if q.cursor >= len(q.entries) {
		if q.repeat == RepeatQueue && len(q.entries) > 0 {
			q.cursor = 0
		} else {
			q.cursor = len(q.entries)
		}
	}

	if q.cursor < len(q.entries) {
		q.startLocked(true)
	} else {
		q.insertionOffset = 0
	}
}

// startLocked begins playback of the entry at the cursor. Entries the
// transport rejects as unplayable are skipped, with attempts bounded by the
// queue length so a fully unplayable queue terminates exhausted instead of
// cycling forever under RepeatQueue.
func (q *Queue) startLocked(resetOffset bool) {
	if resetOffset {
		q.insertionOffset = 0
	}

	for attempts := 0; q.cursor < len(q.entries); attempts++ {
		if attempts >= len(q.entries) {
			q.cursor = len(q.entries)
			break
		}

		track := q.entries[q.cursor]
		err := q.transport.Play(track)
		if err == nil {
			q.paused = false
			return
		}
		q.logger.Warn("skipping unplayable track", "path", track.Path, "error", err)

		q.cursor++
		if q.cursor >= len(q.entries) && q.repeat == RepeatQueue && len(q.entries) > 0 {
			q.cursor = 0
		}
		q.insertionOffset = 0
	}

	q.insertionOffset = 0
}
