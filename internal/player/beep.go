package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/shared"
)

// BeepTransport plays one decoded file at a time through the process-wide
// speaker. It satisfies [Transport].
//
// Each Play bumps a generation counter captured by the completion callback;
// callbacks whose generation no longer matches belong to an interrupted
// source and are dropped, which is what makes the exactly-once contract
// hold across skips and stops.
type BeepTransport struct {
	mu sync.Mutex

	sampleRate  beep.SampleRate
	bufferLen   time.Duration
	initialized bool

	streamer   beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	generation uint64

	done   chan struct{}
	logger *log.Logger
}

// NewBeepTransport creates a transport targeting the given output sample
// rate. The speaker itself is initialized lazily on the first Play.
func NewBeepTransport(sampleRate int, buffer time.Duration, logger *log.Logger) *BeepTransport {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if buffer <= 0 {
		buffer = 100 * time.Millisecond
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
		shared.SetLogLevel(logger, log.FatalLevel)
	}
	return &BeepTransport{
		sampleRate: beep.SampleRate(sampleRate),
		bufferLen:  buffer,
		done:       make(chan struct{}, 1),
		logger:     logger,
	}
}

// decode opens and decodes an audio file by extension. All failures are
// reported as [shared.ErrUnplayable] so callers can skip rather than abort.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", shared.ErrUnplayable, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: unsupported extension %q", shared.ErrUnplayable, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %v", shared.ErrUnplayable, err)
	}

	return streamer, format, nil
}

// ProbeDuration reports a file's length in whole seconds by decoding its
// header, or 0 when the file cannot be decoded. Used by the library scanner.
func ProbeDuration(path string) int {
	streamer, format, err := decode(path)
	if err != nil {
		return 0
	}
	defer streamer.Close()

	n := streamer.Len()
	if n <= 0 || format.SampleRate <= 0 {
		return 0
	}
	return int(format.SampleRate.D(n).Round(time.Second) / time.Second)
}

// Play implements [Transport].
func (t *BeepTransport) Play(track library.Track) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	streamer, format, err := decode(track.Path)
	if err != nil {
		return err
	}

	if !t.initialized {
		if err := speaker.Init(t.sampleRate, t.sampleRate.N(t.bufferLen)); err != nil {
			streamer.Close()
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		t.initialized = true
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != t.sampleRate {
		stream = beep.Resample(4, format.SampleRate, t.sampleRate, streamer)
	}

	t.streamer = streamer
	t.format = format
	t.ctrl = &beep.Ctrl{Streamer: stream}

	t.generation++
	gen := t.generation
	speaker.Play(beep.Seq(t.ctrl, beep.Callback(func() {
		// Leave the speaker goroutine before taking the transport lock.
		go t.finished(gen)
	})))

	t.logger.Debug("playing", "path", track.Path)
	return nil
}

// finished handles a source-drained callback. Stale generations belong to
// sources that were stopped or replaced and are ignored.
func (t *BeepTransport) finished(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return
	}
	t.closeLocked()

	select {
	case t.done <- struct{}{}:
	default:
	}
}

// Stop implements [Transport]. Any completion that was signalled but not
// yet consumed is drained here, since it belongs to the abandoned track.
func (t *BeepTransport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *BeepTransport) stopLocked() {
	t.generation++
	if t.initialized {
		speaker.Clear()
	}
	t.closeLocked()

	select {
	case <-t.done:
	default:
	}
}

// Pause implements [Transport].
func (t *BeepTransport) Pause(paused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = paused
	speaker.Unlock()
}

// Done implements [Transport].
func (t *BeepTransport) Done() <-chan struct{} {
	return t.done
}

// Position implements [Transport].
func (t *BeepTransport) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := t.streamer.Position()
	speaker.Unlock()
	return t.format.SampleRate.D(pos)
}

// Duration implements [Transport].
func (t *BeepTransport) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return 0
	}
	return t.format.SampleRate.D(t.streamer.Len())
}

func (t *BeepTransport) closeLocked() {
	if t.streamer != nil {
		t.streamer.Close()
		t.streamer = nil
	}
	t.ctrl = nil
}
