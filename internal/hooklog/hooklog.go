// Package hooklog appends newline-delimited JSON audit records, one log
// file per lifecycle event kind.
//
// Records are written with a single O_APPEND write so concurrent hook
// processes interleave whole lines, never fragments. The log is a pure
// audit trail: nothing in the program reads it back.
package hooklog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one audit record.
type Entry struct {
	Time    time.Time       `json:"time"`
	Event   string          `json:"event"`
	Session string          `json:"session_id,omitempty"`
	Tool    string          `json:"tool_name,omitempty"`
	Outcome string          `json:"outcome"`
	Reason  string          `json:"reason,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Writer appends entries under a single directory, one file per event
// kind (pre_tool_use.json, stop.json, ...).
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. The directory is created on
// first append, not here.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the log directory.
func (w *Writer) Dir() string { return w.dir }

// Append writes one entry to the event's log file. The entry is
// serialized to a single line; a zero Time is stamped with now.
func (w *Writer) Append(entry Entry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	if entry.Event == "" {
		return fmt.Errorf("log entry has no event kind")
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}
	line = append(line, '\n')

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(w.dir, entry.Event+".json")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	// One Write call per record keeps lines whole under concurrent
	// appenders.
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}
