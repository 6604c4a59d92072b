// Package ui implements the interactive player interface using bubbletea's Elm architecture.
//
// The layout is a single screen: a search box over the ranked library list
// on the left, the playback queue on the right, and a status bar underneath.
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern.
//
// Two recurring commands drive everything that isn't a key press: a ~100ms
// tick advances the incremental search engine by one work quantum and
// refreshes the visible results, and a completion pump blocks on the
// transport's Done channel, translating each finished track into a message
// the update loop feeds to the queue. Playback state is therefore only ever
// mutated from the update loop, never from the audio thread.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, /, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
