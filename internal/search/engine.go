// Package search implements the incremental fuzzy matcher over the track
// library.
//
// Matching work is chunked: each [Engine.Poll] examines a bounded number of
// library entries, so a query over a large library never blocks the UI tick
// that drives it. Editing the query restarts the computation; partial
// results from a superseded query are discarded wholesale, never mixed.
//
// Policy decisions (the upstream behavior was ambiguous): the query is
// applied to title, artist and album and OR-combined: a match in any
// column counts and the best column score wins. An empty query yields every
// track in library order. Score ties rank by library insertion order.
package search

import (
	"slices"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/desertthunder/quaver/internal/library"
)

// DefaultPollQuantum is how many library entries one Poll examines when the
// config doesn't override it.
const DefaultPollQuantum = 500

// scoredItem pairs a library index with its best column score.
type scoredItem struct {
	index int
	score int
}

// Engine is the incremental search engine. Methods are safe for concurrent
// use, though in practice a single UI loop drives it.
type Engine struct {
	mu sync.Mutex

	items   []library.Track
	columns [][]string // per item: candidate strings, one per searchable column

	pattern string
	next    int // index of the next item Poll will examine
	acc     []scoredItem

	results []library.Track
	quantum int
}

// NewEngine creates an engine with the given work quantum per Poll;
// quantum <= 0 selects [DefaultPollQuantum].
func NewEngine(quantum int) *Engine {
	if quantum <= 0 {
		quantum = DefaultPollQuantum
	}
	return &Engine{quantum: quantum}
}

// SetItems replaces the searchable library. The current query is re-run
// against the new items from scratch.
func (e *Engine) SetItems(tracks []library.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = slices.Clone(tracks)
	e.columns = make([][]string, len(e.items))
	for i, t := range e.items {
		e.columns[i] = []string{t.DisplayTitle(), t.Artist, t.Album}
	}
	e.restartLocked()
}

// SetQuery updates the pattern applied to all searchable columns. Setting
// the same text again is a no-op; anything else invalidates the current
// result computation.
func (e *Engine) SetQuery(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if text == e.pattern {
		return
	}
	e.pattern = text
	e.restartLocked()
}

// Query returns the current pattern.
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern
}

// Poll advances the match computation by one work quantum and refreshes the
// published results. Designed to be called once per UI tick; it never
// blocks on I/O and does a bounded amount of scoring work.
func (e *Engine) Poll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pattern == "" || e.next >= len(e.items) {
		return
	}

	end := e.next + e.quantum
	if end > len(e.items) {
		end = len(e.items)
	}

	for i := e.next; i < end; i++ {
		if score, ok := bestColumnScore(e.pattern, e.columns[i]); ok {
			e.acc = append(e.acc, scoredItem{index: i, score: score})
		}
	}
	e.next = end

	e.publishLocked()
}

// Exhausted reports whether the current query has been matched against the
// whole library.
func (e *Engine) Exhausted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern == "" || e.next >= len(e.items)
}

// Results returns the ranked matches for the current pattern, most relevant
// first. The returned slice is a snapshot; the engine never mutates it
// after publication.
func (e *Engine) Results() []library.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.results
}

// restartLocked discards any in-progress computation and republishes the
// baseline for the current pattern.
func (e *Engine) restartLocked() {
	e.next = 0
	e.acc = e.acc[:0]

	if e.pattern == "" {
		// Empty-query policy: the whole library in insertion order.
		e.results = slices.Clone(e.items)
		return
	}
	e.results = nil
}

// publishLocked snapshots the accumulated matches, ranked by descending
// score with ties broken by library insertion order.
func (e *Engine) publishLocked() {
	ranked := slices.Clone(e.acc)
	slices.SortStableFunc(ranked, func(a, b scoredItem) int {
		if a.score != b.score {
			return b.score - a.score
		}
		return a.index - b.index
	})

	results := make([]library.Track, len(ranked))
	for i, m := range ranked {
		results[i] = e.items[m.index]
	}
	e.results = results
}

// bestColumnScore fuzzy-matches the pattern against each column candidate
// and returns the highest score, or false when no column matches.
func bestColumnScore(pattern string, columns []string) (int, bool) {
	matches := fuzzy.Find(pattern, columns)
	if len(matches) == 0 {
		return 0, false
	}

	best := matches[0].Score
	for _, m := range matches[1:] {
		if m.Score > best {
			best = m.Score
		}
	}
	return best, true
}
