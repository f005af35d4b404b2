package audio

import (
	"context"
	"sync"
)

// MockPlayer records playback requests without producing sound. It is
// the player of choice for tests and for --silent operation.
type MockPlayer struct {
	mu     sync.Mutex
	played []string

	// PlayErr, when set, is returned from every Play call.
	PlayErr error

	// AvailableErr, when set, is returned from Available.
	AvailableErr error
}

// NewMockPlayer creates an always-available mock.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the path and returns PlayErr.
func (m *MockPlayer) Play(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.played = append(m.played, path)
	m.mu.Unlock()
	return m.PlayErr
}

// Available returns AvailableErr.
func (m *MockPlayer) Available() error {
	return m.AvailableErr
}

// Played returns a copy of the paths played so far.
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.played))
	copy(out, m.played)
	return out
}

// Ensure MockPlayer implements Player.
var _ Player = (*MockPlayer)(nil)
