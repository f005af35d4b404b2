package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const playTimeout = 60 * time.Second

// ErrNoPlayer is returned when no playback command is available on the
// current system.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays an audio file that already exists on disk.
type Player interface {
	// Play blocks until playback of the file at path finishes or ctx is done.
	Play(ctx context.Context, path string) error

	// Available reports whether playback can work on this system.
	Available() error
}

// playerCommand describes one candidate playback command and how to
// invoke it for a given file.
type playerCommand struct {
	binary string
	args   func(path string) []string
}

// commandsFor returns candidate playback commands for the current OS and
// file extension, in preference order.
func commandsFor(goos, ext string) []playerCommand {
	switch goos {
	case "darwin":
		return []playerCommand{
			{"afplay", func(p string) []string { return []string{p} }},
		}
	case "windows":
		return []playerCommand{
			{"powershell", func(p string) []string {
				return []string{"-NoProfile", "-Command",
					fmt.Sprintf("(New-Object Media.SoundPlayer %q).PlaySync()", p)}
			}},
		}
	case "linux":
		cmds := []playerCommand{}
		if ext == ".mp3" {
			cmds = append(cmds, playerCommand{"mpg123", func(p string) []string { return []string{"-q", p} }})
		}
		if ext == ".wav" {
			cmds = append(cmds, playerCommand{"aplay", func(p string) []string { return []string{"-q", p} }})
		}
		cmds = append(cmds,
			playerCommand{"ffplay", func(p string) []string {
				return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", p}
			}},
			playerCommand{"paplay", func(p string) []string { return []string{p} }},
		)
		return cmds
	default:
		return nil
	}
}

// SystemPlayer shells out to whatever playback command the host offers:
// afplay on macOS, mpg123/aplay/ffplay/paplay on Linux, PowerShell's
// SoundPlayer on Windows.
type SystemPlayer struct {
	goos string

	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewSystemPlayer creates a player for the current operating system.
func NewSystemPlayer() *SystemPlayer {
	return &SystemPlayer{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Available reports whether at least one playback command exists in PATH.
func (s *SystemPlayer) Available() error {
	// Probe with both extensions so availability does not depend on the
	// format of any particular file.
	for _, ext := range []string{".mp3", ".wav"} {
		if _, _, err := s.resolve(ext); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w on %s", ErrNoPlayer, s.goos)
}

// Play runs the first available playback command and waits for it.
func (s *SystemPlayer) Play(ctx context.Context, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	bin, cmd, err := s.resolve(ext)
	if err != nil {
		return fmt.Errorf("%w for %s files on %s", ErrNoPlayer, ext, s.goos)
	}

	ctx, cancel := context.WithTimeout(ctx, playTimeout)
	defer cancel()

	args := cmd.args(path)
	log.Debug("Playing audio", "player", bin, "file", path)

	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, bin, args...)
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("playback interrupted: %w", ctx.Err())
		}
		return fmt.Errorf("%s failed: %w, stderr: %s", bin, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// resolve finds the first candidate command present in PATH.
func (s *SystemPlayer) resolve(ext string) (string, playerCommand, error) {
	for _, cmd := range commandsFor(s.goos, ext) {
		if path, err := s.lookPath(cmd.binary); err == nil {
			return path, cmd, nil
		}
	}
	return "", playerCommand{}, exec.ErrNotFound
}

// Ensure SystemPlayer implements Player.
var _ Player = (*SystemPlayer)(nil)
