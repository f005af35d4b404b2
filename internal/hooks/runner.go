package hooks

import (
	"context"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/herald-sh/herald/internal/hooklog"
)

// Announcer speaks a short status phrase. Failures are the announcer's
// problem: a hook outcome never depends on audio working.
type Announcer interface {
	Announce(ctx context.Context, text string) error
}

// RunnerConfig wires a Runner.
type RunnerConfig struct {
	// Log receives one audit record per invocation. Nil disables logging.
	Log *hooklog.Writer

	// Announcer speaks feedback on Stop, SubagentStop, and Notification.
	// Nil disables audio.
	Announcer Announcer

	// Engineer, when set, occasionally personalizes spoken phrases.
	Engineer string

	// Seed fixes the phrase selection for tests. Zero means random.
	Seed int64
}

// Runner executes one lifecycle callback: parse stdin, decide, log,
// optionally speak.
type Runner struct {
	logw      *hooklog.Writer
	announcer Announcer
	engineer  string
	rng       *rand.Rand
}

// NewRunner creates a runner.
func NewRunner(cfg RunnerConfig) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Runner{
		logw:      cfg.Log,
		announcer: cfg.Announcer,
		engineer:  cfg.Engineer,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Run handles one event of the given kind read from stdin and returns
// the outcome for the host. It never panics on bad input.
func (r *Runner) Run(ctx context.Context, kind Kind, stdin io.Reader) Outcome {
	ev, err := ReadEvent(stdin)
	if err != nil {
		out := softError(err.Error())
		r.audit(kind, nil, out)
		return out
	}

	out := r.decide(kind, ev)
	r.audit(kind, ev, out)

	if out.Decision == Allow {
		r.announce(ctx, kind, ev)
	}
	return out
}

// decide applies the fixed rule for an event kind.
func (r *Runner) decide(kind Kind, ev *Event) Outcome {
	switch kind {
	case PreToolUse:
		return checkPreToolUse(ev)
	default:
		// The remaining kinds are observe-only: they log and may speak,
		// but never block the host.
		return allow()
	}
}

// audit appends the invocation to the event's log file. Logging
// failures are reported, not fatal.
func (r *Runner) audit(kind Kind, ev *Event, out Outcome) {
	if r.logw == nil {
		return
	}
	entry := hooklog.Entry{
		Event:   kind.LogName(),
		Outcome: out.Decision.String(),
		Reason:  out.Reason,
	}
	if ev != nil {
		entry.Session = ev.SessionID
		entry.Tool = ev.ToolName
		entry.Payload = ev.Raw()
	}
	if err := r.logw.Append(entry); err != nil {
		log.Warn("Failed to append hook log", "event", kind, "error", err)
	}
}

// announce speaks feedback for the kinds that have any. Audio problems
// never change the outcome.
func (r *Runner) announce(ctx context.Context, kind Kind, ev *Event) {
	if r.announcer == nil {
		return
	}
	text := announcementText(kind, ev, r.engineer, r.rng)
	if text == "" {
		return
	}
	if err := r.announcer.Announce(ctx, text); err != nil {
		log.Warn("Announcement failed", "event", kind, "error", err)
	}
}
