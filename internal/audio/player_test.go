package audio

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestSystemPlayer_AvailableWithoutBinaries(t *testing.T) {
	p := NewSystemPlayer()
	p.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	if err := p.Available(); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("Available with empty PATH = %v, want ErrNoPlayer", err)
	}
}

func TestSystemPlayer_ResolvePreference(t *testing.T) {
	p := &SystemPlayer{goos: "linux"}
	p.lookPath = func(name string) (string, error) {
		switch name {
		case "mpg123", "ffplay":
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}

	bin, _, err := p.resolve(".mp3")
	if err != nil {
		t.Fatal(err)
	}
	if bin != "/usr/bin/mpg123" {
		t.Errorf("resolve(.mp3) = %s, want mpg123 preferred over ffplay", bin)
	}

	// For wav only ffplay remains, aplay is absent.
	bin, _, err = p.resolve(".wav")
	if err != nil {
		t.Fatal(err)
	}
	if bin != "/usr/bin/ffplay" {
		t.Errorf("resolve(.wav) = %s, want ffplay", bin)
	}
}

func TestSystemPlayer_UnknownOS(t *testing.T) {
	p := &SystemPlayer{goos: "plan9", lookPath: exec.LookPath}

	if err := p.Available(); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("Available on unsupported OS = %v, want ErrNoPlayer", err)
	}
	if err := p.Play(context.Background(), "x.mp3"); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("Play on unsupported OS = %v, want ErrNoPlayer", err)
	}
}

func TestMockPlayer_RecordsPlays(t *testing.T) {
	m := NewMockPlayer()

	if err := m.Play(context.Background(), "/cache/work-complete.mp3"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := m.Play(context.Background(), "/cache/ready.mp3"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	played := m.Played()
	if len(played) != 2 || played[0] != "/cache/work-complete.mp3" {
		t.Errorf("played = %v, want both paths in order", played)
	}
}

func TestMockPlayer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMockPlayer()
	if err := m.Play(ctx, "x.mp3"); err == nil {
		t.Error("Play with cancelled context should fail")
	}
	if len(m.Played()) != 0 {
		t.Error("cancelled Play still recorded the path")
	}
}
