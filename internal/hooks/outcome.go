package hooks

// Decision classifies what a hook tells its host.
type Decision int

const (
	// Allow lets the host proceed.
	Allow Decision = iota

	// Block halts the action; the reason is relayed upstream to the
	// controlling agent.
	Block

	// SoftError reports a non-fatal problem to the human operator only.
	SoftError
)

// String returns the decision name used in logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Block:
		return "block"
	case SoftError:
		return "soft_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of running one hook.
type Outcome struct {
	Decision Decision
	Reason   string
}

// ExitCode maps the decision to the process exit code the host expects:
// 0 allow, 2 block, 1 soft error.
func (o Outcome) ExitCode() int {
	switch o.Decision {
	case Allow:
		return 0
	case Block:
		return 2
	default:
		return 1
	}
}

func allow() Outcome { return Outcome{Decision: Allow} }

func block(reason string) Outcome { return Outcome{Decision: Block, Reason: reason} }

func softError(reason string) Outcome { return Outcome{Decision: SoftError, Reason: reason} }
