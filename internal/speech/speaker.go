// Package speech wires phrase resolution, the audio cache, and the
// provider chain into a single Speak operation.
package speech

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/herald-sh/herald/internal/audio"
	"github.com/herald-sh/herald/internal/phrase"
	"github.com/herald-sh/herald/internal/provider"
	"github.com/herald-sh/herald/internal/store"
)

// Synthesizer is the part of the provider chain the speaker needs.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (provider.Audio, error)
}

// Speaker turns a phrase into played audio: cache first, synthesis on
// miss, playback last.
type Speaker struct {
	store  store.Store
	chain  Synthesizer
	player audio.Player
}

// Result reports what one Speak call did.
type Result struct {
	Key      string
	Path     string
	CacheHit bool
	Provider string // empty on cache hit
	Played   bool
}

// NewSpeaker creates a speaker over the given cache, chain, and player.
func NewSpeaker(st store.Store, chain Synthesizer, player audio.Player) *Speaker {
	return &Speaker{store: st, chain: chain, player: player}
}

// Speak resolves text to a cache key, serves cached audio when present,
// and otherwise synthesizes through the chain and stores the result.
// A failure to store does not fail the call: the audio is parked in a
// temp file so playback still happens.
func (s *Speaker) Speak(ctx context.Context, text string) (Result, error) {
	return s.speak(ctx, text, true)
}

// Prime is Speak without playback. It is used to warm the cache.
func (s *Speaker) Prime(ctx context.Context, text string) (Result, error) {
	return s.speak(ctx, text, false)
}

func (s *Speaker) speak(ctx context.Context, text string, play bool) (Result, error) {
	key, err := phrase.Resolve(text)
	if err != nil {
		return Result{}, err
	}

	res := Result{Key: key}

	if path, ok := s.store.Lookup(key); ok {
		log.Debug("Cache hit", "key", key, "path", path)
		res.Path = path
		res.CacheHit = true
		return s.finish(ctx, res, play)
	}

	log.Debug("Cache miss, synthesizing", "key", key)

	aud, err := s.chain.Synthesize(ctx, text)
	if err != nil {
		return res, fmt.Errorf("synthesis failed for %q: %w", key, err)
	}
	res.Provider = aud.Provider

	path, err := s.store.Store(key, aud.Data, aud.Format)
	if err != nil {
		log.Warn("Failed to cache audio, playing from temp file", "key", key, "error", err)
		path, err = spillToTemp(key, aud)
		if err != nil {
			return res, err
		}
	}
	res.Path = path

	return s.finish(ctx, res, play)
}

func (s *Speaker) finish(ctx context.Context, res Result, play bool) (Result, error) {
	if !play || s.player == nil {
		return res, nil
	}
	if err := s.player.Play(ctx, res.Path); err != nil {
		return res, fmt.Errorf("playback failed: %w", err)
	}
	res.Played = true
	return res, nil
}

// spillToTemp writes audio outside the cache when storing fails.
func spillToTemp(key string, aud provider.Audio) (string, error) {
	f, err := os.CreateTemp("", key+"-*."+aud.Format)
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	if _, err := f.Write(aud.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp audio file: %w", err)
	}
	return f.Name(), nil
}
