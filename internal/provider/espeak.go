package provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const (
	espeakTimeout  = 15 * time.Second
	espeakMaxAudio = 20 * 1024 * 1024
)

// espeakBinaries lists the binary names probed for, in preference order.
var espeakBinaries = []string{"espeak-ng", "espeak"}

// Espeak is the offline last-resort synthesizer. It shells out to
// espeak-ng (or classic espeak) and captures WAV from stdout, so it works
// with no network and no credentials.
type Espeak struct {
	voice string
	speed int // words per minute

	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// EspeakConfig holds construction options. Zero values get espeak's
// defaults.
type EspeakConfig struct {
	Voice string // e.g. "en-us"
	Speed int    // words per minute, espeak default is 175
}

// NewEspeak creates the provider.
func NewEspeak(config EspeakConfig) *Espeak {
	if config.Voice == "" {
		config.Voice = "en-us"
	}
	if config.Speed == 0 {
		config.Speed = 175
	}
	return &Espeak{voice: config.Voice, speed: config.Speed, lookPath: exec.LookPath}
}

// Name returns "espeak".
func (e *Espeak) Name() string { return "espeak" }

// Available reports whether an espeak binary is in PATH.
func (e *Espeak) Available() error {
	if _, err := e.binary(); err != nil {
		return fmt.Errorf("%w: no espeak-ng or espeak in PATH", ErrUnavailable)
	}
	return nil
}

// Synthesize runs espeak with --stdout and captures the WAV output.
func (e *Espeak) Synthesize(ctx context.Context, text string) (Audio, error) {
	if text == "" {
		return Audio{}, ErrEmptyText
	}

	bin, err := e.binary()
	if err != nil {
		return Audio{}, fmt.Errorf("%w: no espeak-ng or espeak in PATH", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, espeakTimeout)
	defer cancel()

	args := []string{
		"--stdout",
		"-v", e.voice,
		"-s", fmt.Sprintf("%d", e.speed),
		text,
	}

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Audio{}, fmt.Errorf("espeak timed out: %w", ctx.Err())
		}
		return Audio{}, fmt.Errorf("espeak failed: %w, stderr: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	data := stdout.Bytes()
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("espeak produced no audio, stderr: %s", bytes.TrimSpace(stderr.Bytes()))
	}
	if len(data) > espeakMaxAudio {
		return Audio{}, fmt.Errorf("espeak audio too large: %d bytes", len(data))
	}

	return Audio{Data: data, Format: "wav"}, nil
}

// binary returns the first espeak binary found in PATH.
func (e *Espeak) binary() (string, error) {
	for _, name := range espeakBinaries {
		if path, err := e.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

// Ensure Espeak implements Provider.
var _ Provider = (*Espeak)(nil)
