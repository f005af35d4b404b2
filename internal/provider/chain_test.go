package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeProvider is a scriptable Provider that counts invocations.
type fakeProvider struct {
	name        string
	unavailable error
	synthErr    error
	audio       []byte
	calls       int
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Available() error { return f.unavailable }

func (f *fakeProvider) Synthesize(_ context.Context, text string) (Audio, error) {
	f.calls++
	if f.synthErr != nil {
		return Audio{}, f.synthErr
	}
	audio := f.audio
	if audio == nil {
		audio = []byte("audio:" + text)
	}
	return Audio{Data: audio, Format: "mp3"}, nil
}

func TestChain_SkipsUnavailableAndStopsAtFirstSuccess(t *testing.T) {
	first := &fakeProvider{name: "cloud-a", unavailable: fmt.Errorf("%w: no key", ErrUnavailable)}
	second := &fakeProvider{name: "cloud-b", audio: []byte("second audio")}
	third := &fakeProvider{name: "local"}

	chain := NewChain(first, second, third)

	audio, err := chain.Synthesize(context.Background(), "Work complete!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if audio.Provider != "cloud-b" {
		t.Errorf("winning provider = %s, want cloud-b", audio.Provider)
	}
	if string(audio.Data) != "second audio" {
		t.Errorf("audio = %q, want output of cloud-b", audio.Data)
	}
	if first.calls != 0 {
		t.Errorf("unavailable provider was invoked %d times", first.calls)
	}
	if third.calls != 0 {
		t.Errorf("provider after the winner was invoked %d times", third.calls)
	}
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "cloud-a", synthErr: errors.New("quota exceeded")}
	second := &fakeProvider{name: "local", audio: []byte("offline audio")}

	chain := NewChain(first, second)

	audio, err := chain.Synthesize(context.Background(), "All done!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if audio.Provider != "local" {
		t.Errorf("winning provider = %s, want local", audio.Provider)
	}
	if first.calls != 1 {
		t.Errorf("failing provider invoked %d times, want 1", first.calls)
	}
}

func TestChain_AllFailed(t *testing.T) {
	first := &fakeProvider{name: "cloud-a", unavailable: fmt.Errorf("%w: no key", ErrUnavailable)}
	second := &fakeProvider{name: "cloud-b", synthErr: errors.New("network down")}
	third := &fakeProvider{name: "local", synthErr: errors.New("binary crashed")}

	chain := NewChain(first, second, third)

	_, err := chain.Synthesize(context.Background(), "Task finished!")
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}

	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("error type = %T, want *AllFailedError", err)
	}

	if len(allFailed.Attempts) != 3 {
		t.Fatalf("attempts = %d, want 3", len(allFailed.Attempts))
	}

	wantStates := []AttemptState{Skipped, Failed, Failed}
	for i, a := range allFailed.Attempts {
		if a.State != wantStates[i] {
			t.Errorf("attempt %d (%s) state = %s, want %s", i, a.Provider, a.State, wantStates[i])
		}
		if a.Err == nil {
			t.Errorf("attempt %d (%s) has no reason", i, a.Provider)
		}
	}
}

func TestChain_EmptyChain(t *testing.T) {
	chain := NewChain()

	_, err := chain.Synthesize(context.Background(), "hello")
	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("error type = %T, want *AllFailedError", err)
	}
	if len(allFailed.Attempts) != 0 {
		t.Errorf("attempts = %d, want 0", len(allFailed.Attempts))
	}
}

func TestChain_EmptyText(t *testing.T) {
	p := &fakeProvider{name: "local"}
	chain := NewChain(p)

	if _, err := chain.Synthesize(context.Background(), "   "); err != ErrEmptyText {
		t.Errorf("error = %v, want ErrEmptyText", err)
	}
	if p.calls != 0 {
		t.Error("provider invoked for empty text")
	}
}

func TestChain_CancelledContextStopsFallthrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := &fakeProvider{name: "cloud-a", synthErr: ctx.Err()}
	second := &fakeProvider{name: "local"}

	chain := NewChain(first, second)

	_, err := chain.Synthesize(ctx, "Job complete!")
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if second.calls != 0 {
		t.Error("chain kept attempting providers after context cancellation")
	}
}

func TestChain_Select(t *testing.T) {
	first := &fakeProvider{name: "cloud-a"}
	second := &fakeProvider{name: "local"}
	chain := NewChain(first, second)

	selected, err := chain.Select("LOCAL")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	audio, err := selected.Synthesize(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if audio.Provider != "local" {
		t.Errorf("winning provider = %s, want local", audio.Provider)
	}
	if first.calls != 0 {
		t.Error("Select still invoked the unselected provider")
	}
}

func TestChain_SelectUnknownNamesTheProvider(t *testing.T) {
	chain := NewChain(&fakeProvider{name: "cloud-a"}, &fakeProvider{name: "local"})

	_, err := chain.Select("typo")
	if err == nil {
		t.Fatal("selecting an unknown provider should fail")
	}
	for _, want := range []string{"typo", "cloud-a", "local"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestAllFailedError_Message(t *testing.T) {
	err := &AllFailedError{Attempts: []Attempt{
		{Provider: "elevenlabs", State: Skipped, Err: errors.New("ELEVENLABS_API_KEY not set")},
		{Provider: "openai", State: Failed, Err: errors.New("HTTP 429")},
	}}

	msg := err.Error()
	for _, want := range []string{"elevenlabs skipped", "openai failed", "HTTP 429"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}
