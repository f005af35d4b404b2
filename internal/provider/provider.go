// Package provider implements speech synthesis backends and the ordered
// fallback chain that tries them.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common provider errors.
var (
	// ErrUnavailable indicates a provider cannot run at all, typically a
	// missing credential or binary. Unavailable providers are skipped by
	// the chain without counting as failures.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrEmptyText indicates there was nothing to synthesize.
	ErrEmptyText = errors.New("text is empty")
)

// Audio is the result of a successful synthesis.
type Audio struct {
	Data     []byte
	Format   string // "mp3" or "wav"
	Provider string // name of the provider that produced it
}

// Provider is a single speech synthesis backend.
type Provider interface {
	// Name identifies the provider in logs and attempt reports.
	Name() string

	// Available reports whether the provider can be attempted. A non-nil
	// error carries the reason (missing credential, binary not in PATH)
	// and means the chain skips this provider without treating it as a
	// failure.
	Available() error

	// Synthesize converts text to audio. Implementations bound their own
	// work with a timeout derived from ctx.
	Synthesize(ctx context.Context, text string) (Audio, error)
}

// AttemptState classifies what happened with one provider during a chain run.
type AttemptState int

const (
	// Skipped means the availability check failed; the provider was never
	// attempted.
	Skipped AttemptState = iota

	// Failed means synthesis was attempted and returned an error.
	Failed

	// Succeeded means the provider produced audio.
	Succeeded
)

// String returns the state name for logs and errors.
func (s AttemptState) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Attempt records the outcome of one provider within a chain run.
type Attempt struct {
	Provider string
	State    AttemptState
	Err      error
}

// AllFailedError reports a chain run in which no provider produced audio.
// It carries every attempt so callers can see exactly why.
type AllFailedError struct {
	Attempts []Attempt
}

// Error lists each provider with its state and reason.
func (e *AllFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return "speech synthesis failed: no providers configured"
	}

	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			parts = append(parts, fmt.Sprintf("%s %s (%v)", a.Provider, a.State, a.Err))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s", a.Provider, a.State))
		}
	}
	return "speech synthesis failed: " + strings.Join(parts, "; ")
}
