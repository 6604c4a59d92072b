package player

import (
	"time"

	"github.com/desertthunder/quaver/internal/library"
)

// Transport wraps one opaque playable source at a time.
//
// The contract: a successful Play arranges for exactly one value on Done
// when the source drains naturally. A source interrupted by Stop or by a
// replacement Play emits nothing, and Stop additionally discards any
// completion that was already signalled but not yet consumed.
// Play failures are reported with [shared.ErrUnplayable] in the chain and
// leave the transport idle.
type Transport interface {
	// Play starts the given track from the beginning, replacing whatever
	// was playing. Fire-and-forget: it returns once decoding has started.
	Play(track library.Track) error

	// Stop silences the sink and discards the pending completion, if any.
	Stop()

	// Pause suspends or resumes the current source without mutating the
	// completion contract.
	Pause(paused bool)

	// Done is the completion notification channel. It is owned by the
	// transport and stays valid for the transport's lifetime.
	Done() <-chan struct{}

	// Position reports how far into the current source playback is.
	Position() time.Duration

	// Duration reports the total length of the current source.
	Duration() time.Duration
}
