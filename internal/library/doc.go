// Package library defines the track store and library import pipeline.
//
// A [Track] is an immutable value describing one audio file: its path plus
// display fields cached at import time. Tracks are created once, by the
// [Scanner] or by the sqlite cache, and are copied freely afterwards; two
// tracks are the same track iff their paths are equal.
//
// The [Watcher] reports changes under the library root so callers can
// trigger a rescan without polling.
package library
