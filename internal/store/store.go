// Package store persists synthesized audio keyed by phrase cache key.
//
// The disk layout is deliberately dumb: one flat directory of playable audio
// files named <key>.<format>, no manifest. The directory listing is the
// index, which keeps the cache inspectable and lets independently invoked
// processes share it with no coordination beyond the filesystem.
package store

import (
	"errors"
	"time"
)

// Common store errors.
var (
	// ErrInvalidKey indicates a key that cannot name a cache file.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrUnknownFormat indicates an audio format the store does not accept.
	ErrUnknownFormat = errors.New("unknown audio format")
)

// Formats the store accepts, in lookup preference order.
var knownFormats = []string{"mp3", "wav"}

// Store is a flat key-to-audio-file mapping. Entries are written once and
// never mutated; there is no expiry or eviction.
type Store interface {
	// Lookup returns the path of the cached audio for key.
	// ok is false when no entry exists; that is not an error.
	Lookup(key string) (path string, ok bool)

	// Store writes audio bytes for key and returns the resulting path.
	// Entries are write-once: storing a key that already has an entry
	// leaves the original bytes in place and returns its path. Safe to
	// call concurrently for different keys; a concurrent Lookup never
	// observes a partially written entry.
	Store(key string, audio []byte, format string) (path string, err error)

	// Stats returns hit/miss counters for this store instance.
	Stats() Stats
}

// Stats holds per-instance cache counters. They reset with the process;
// the cache itself is filesystem-backed and outlives any instance.
type Stats struct {
	Hits       int64
	Misses     int64
	Writes     int64
	BytesOut   int64
	LastAccess time.Time
}

// validKey reports whether key can safely name a file in the cache
// directory. Keys come from the phrase resolver and are slug- or
// hex-shaped; anything else is rejected rather than escaped.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// validFormat reports whether format is one the store accepts.
func validFormat(format string) bool {
	for _, f := range knownFormats {
		if f == format {
			return true
		}
	}
	return false
}
