// Package player implements the playback queue and its transport binding.
//
// The [Queue] is the single unit of shared playback state: entries, cursor,
// repeat mode, queued-next window and the sink handle all live behind one
// mutex, and the exported methods are the only mutation path. Two actors
// call into it: the UI loop, and whoever pumps the transport's completion
// channel. The transport never calls back into the queue; it emits one
// value on [Transport.Done] per naturally exhausted source, and the queue
// consumes that on its next scheduling opportunity via [Queue.OnTrackComplete].
//
// Repeat semantics differ between a completion and an explicit skip in one
// place only: under [RepeatSingle], completion replays the current track
// while an explicit skip always advances past it. Without that asymmetry a
// repeated track could never be left.
package player
