package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Chain tries providers in a fixed priority order until one succeeds.
// Adding a backend means appending to the list, not editing control flow.
type Chain struct {
	providers []Provider
}

// NewChain creates a chain over the given providers, highest priority first.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the provider names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Select returns a chain narrowed to the named provider. An unknown
// name is an error listing what the chain actually has.
func (c *Chain) Select(name string) (*Chain, error) {
	for _, p := range c.providers {
		if strings.EqualFold(p.Name(), name) {
			return NewChain(p), nil
		}
	}
	return nil, fmt.Errorf("unknown provider %q (have %s)", name, strings.Join(c.Providers(), ", "))
}

// Synthesize walks the chain: unavailable providers are skipped, failing
// providers fall through to the next, and the first success wins. Providers
// after the winner are never invoked. When nothing succeeds the returned
// error is an *AllFailedError carrying every attempt.
func (c *Chain) Synthesize(ctx context.Context, text string) (Audio, error) {
	if strings.TrimSpace(text) == "" {
		return Audio{}, ErrEmptyText
	}

	attempts := make([]Attempt, 0, len(c.providers))

	for _, p := range c.providers {
		if err := p.Available(); err != nil {
			log.Debug("provider skipped", "provider", p.Name(), "reason", err)
			attempts = append(attempts, Attempt{Provider: p.Name(), State: Skipped, Err: err})
			continue
		}

		audio, err := p.Synthesize(ctx, text)
		if err != nil {
			log.Warn("provider failed, falling through", "provider", p.Name(), "error", err)
			attempts = append(attempts, Attempt{Provider: p.Name(), State: Failed, Err: err})

			// A dead context dooms every remaining provider too; stop
			// burning attempts on it.
			if ctx.Err() != nil {
				break
			}
			continue
		}

		log.Debug("provider succeeded", "provider", p.Name(), "bytes", len(audio.Data))
		audio.Provider = p.Name()
		return audio, nil
	}

	return Audio{}, &AllFailedError{Attempts: attempts}
}
