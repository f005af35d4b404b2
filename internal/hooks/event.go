// Package hooks implements the lifecycle callbacks an AI coding
// assistant invokes around its work: payload parsing, the decision
// rules, and the stdin/exit-code adapter.
//
// Each callback is stateless. A hook process reads one JSON event from
// standard input, applies a fixed rule, appends an audit record, and
// exits with a code the host interprets: 0 allows the action, 2 blocks
// it and relays stderr to the agent, anything else is a soft error
// shown to the human operator only.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// Kind identifies a lifecycle event.
type Kind string

const (
	PreToolUse       Kind = "PreToolUse"
	PostToolUse      Kind = "PostToolUse"
	UserPromptSubmit Kind = "UserPromptSubmit"
	Notification     Kind = "Notification"
	Stop             Kind = "Stop"
	SubagentStop     Kind = "SubagentStop"
	PreCompact       Kind = "PreCompact"
	SessionStart     Kind = "SessionStart"
)

// Kinds lists every supported event kind.
func Kinds() []Kind {
	return []Kind{
		PreToolUse, PostToolUse, UserPromptSubmit, Notification,
		Stop, SubagentStop, PreCompact, SessionStart,
	}
}

// LogName returns the snake_case name used for the event's log file.
func (k Kind) LogName() string {
	switch k {
	case PreToolUse:
		return "pre_tool_use"
	case PostToolUse:
		return "post_tool_use"
	case UserPromptSubmit:
		return "user_prompt_submit"
	case Notification:
		return "notification"
	case Stop:
		return "stop"
	case SubagentStop:
		return "subagent_stop"
	case PreCompact:
		return "pre_compact"
	case SessionStart:
		return "session_start"
	default:
		return "unknown"
	}
}

// ParseKind maps a user-supplied name (either wire form or snake_case)
// to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if name == string(k) || name == k.LogName() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown hook event %q", name)
}

// Event is one lifecycle payload. Fields are populated per kind; the
// raw document is retained for the audit log.
type Event struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	ToolResponse   json.RawMessage `json:"tool_response"`
	Prompt         string          `json:"prompt"`
	Message        string          `json:"message"`
	Trigger        string          `json:"trigger"`
	Source         string          `json:"source"`
	StopHookActive bool            `json:"stop_hook_active"`

	raw []byte
}

// Raw returns the payload as read from stdin.
func (e *Event) Raw() []byte { return e.raw }

// toolInput is the subset of tool arguments the rules inspect.
type toolInput struct {
	Command      string `json:"command"`
	FilePath     string `json:"file_path"`
	NotebookPath string `json:"notebook_path"`
	Path         string `json:"path"`
}

// Command returns the shell command for Bash tool events, or "".
func (e *Event) Command() string {
	var in toolInput
	if err := json.Unmarshal(e.ToolInput, &in); err != nil {
		return ""
	}
	return in.Command
}

// TargetPath returns the file path a file tool operates on, or "".
func (e *Event) TargetPath() string {
	var in toolInput
	if err := json.Unmarshal(e.ToolInput, &in); err != nil {
		return ""
	}
	switch {
	case in.FilePath != "":
		return in.FilePath
	case in.NotebookPath != "":
		return in.NotebookPath
	default:
		return in.Path
	}
}

const maxPayload = 1 << 20 // 1 MiB

// ReadEvent decodes one event payload from r. Oversized or malformed
// input is an error, never a panic.
func ReadEvent(r io.Reader) (*Event, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	if len(data) > maxPayload {
		return nil, fmt.Errorf("event payload exceeds %d bytes", maxPayload)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}
	ev.raw = data
	return &ev, nil
}
