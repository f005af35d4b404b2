package hooklog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestWriter_AppendAndSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	entries := []Entry{
		{Event: "pre_tool_use", Tool: "Bash", Outcome: "allow"},
		{Event: "pre_tool_use", Tool: "Bash", Outcome: "block", Reason: "dangerous command"},
		{Event: "stop", Outcome: "allow"},
	}
	for _, e := range entries {
		if err := w.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	pre := readLines(t, filepath.Join(dir, "pre_tool_use.json"))
	if len(pre) != 2 {
		t.Fatalf("pre_tool_use has %d lines, want 2", len(pre))
	}
	if pre[1].Outcome != "block" || pre[1].Reason != "dangerous command" {
		t.Errorf("second entry = %+v, want the block record", pre[1])
	}
	if pre[0].Time.IsZero() {
		t.Error("entry was not timestamped")
	}

	stop := readLines(t, filepath.Join(dir, "stop.json"))
	if len(stop) != 1 {
		t.Errorf("stop has %d lines, want 1", len(stop))
	}
}

func TestWriter_RejectsMissingEvent(t *testing.T) {
	w := NewWriter(t.TempDir())
	if err := w.Append(Entry{Outcome: "allow"}); err == nil {
		t.Error("Append without event kind should fail")
	}
}

func TestWriter_ConcurrentAppendsStayWholeLines(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Append(Entry{Event: "notification", Outcome: "allow"})
		}()
	}
	wg.Wait()

	lines := readLines(t, filepath.Join(dir, "notification.json"))
	if len(lines) != n {
		t.Errorf("got %d parseable lines, want %d", len(lines), n)
	}
}

// readLines parses every NDJSON line, failing the test on any fragment.
func readLines(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("unparseable log line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}
