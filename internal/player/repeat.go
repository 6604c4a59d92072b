package player

// RepeatMode governs how the cursor advances when a track finishes.
type RepeatMode int

const (
	// RepeatOff plays the queue once and stops when it is exhausted.
	RepeatOff RepeatMode = iota
	// RepeatQueue wraps to the first entry after the last one finishes.
	RepeatQueue
	// RepeatSingle replays the current entry on completion. Explicit skips
	// still advance.
	RepeatSingle
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatQueue:
		return "queue"
	case RepeatSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Cycle returns the next mode in off, queue, single order, wrapping back
// to off. Used by the repeat toggle key.
func (m RepeatMode) Cycle() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatQueue
	case RepeatQueue:
		return RepeatSingle
	default:
		return RepeatOff
	}
}
