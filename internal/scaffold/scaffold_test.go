package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/herald-sh/herald/internal/hooks"
)

func TestRun_CreatesTemplate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "project")

	res, err := Run(Options{TargetDir: target, Engineer: "Dana"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, want := range []string{
		"logs",
		filepath.Join(".claude", "settings.json"),
		filepath.Join(".claude", "agents", "code-reviewer.md"),
		".env.sample",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join(target, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
	if len(res.Skipped) != 0 {
		t.Errorf("fresh scaffold skipped %v", res.Skipped)
	}

	env, err := os.ReadFile(filepath.Join(target, ".env.sample"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ELEVENLABS_API_KEY=", "OPENAI_API_KEY=", "ENGINEER_NAME=Dana"} {
		if !strings.Contains(string(env), want) {
			t.Errorf(".env.sample missing %q", want)
		}
	}
}

func TestRun_SettingsWireEveryHook(t *testing.T) {
	target := t.TempDir()
	if _, err := Run(Options{TargetDir: target}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(target, ".claude", "settings.json"))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Hooks map[string][]struct {
			Hooks []struct {
				Type    string `json:"type"`
				Command string `json:"command"`
			} `json:"hooks"`
		} `json:"hooks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("settings.json is not JSON: %v", err)
	}

	for _, kind := range hooks.Kinds() {
		groups, ok := doc.Hooks[string(kind)]
		if !ok || len(groups) == 0 || len(groups[0].Hooks) == 0 {
			t.Errorf("no wiring for %s", kind)
			continue
		}
		cmd := groups[0].Hooks[0].Command
		if !strings.Contains(cmd, "herald hook "+kind.LogName()) {
			t.Errorf("%s wired to %q", kind, cmd)
		}
	}

	stop := doc.Hooks[string(hooks.Stop)][0].Hooks[0].Command
	if !strings.Contains(stop, "--notify") {
		t.Errorf("Stop hook %q is not notify-enabled", stop)
	}
	pre := doc.Hooks[string(hooks.PreToolUse)][0].Hooks[0].Command
	if strings.Contains(pre, "--notify") {
		t.Errorf("PreToolUse hook %q should not announce", pre)
	}
}

func TestRun_DoesNotClobberExisting(t *testing.T) {
	target := t.TempDir()
	custom := []byte("# hand-tuned\n")
	if err := os.WriteFile(filepath.Join(target, "README.md"), custom, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Options{TargetDir: target})
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(filepath.Join(target, "README.md"))
	if string(data) != string(custom) {
		t.Error("existing README was overwritten without Force")
	}

	found := false
	for _, s := range res.Skipped {
		if s == "README.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("skipped = %v, want README.md listed", res.Skipped)
	}
}

func TestRun_CopiesCache(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"work-complete.mp3", "all-done.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(src, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	target := t.TempDir()
	res, err := Run(Options{TargetDir: target, CacheDir: src})
	if err != nil {
		t.Fatal(err)
	}
	if res.CachedFiles != 2 {
		t.Errorf("cached files = %d, want 2 (txt excluded)", res.CachedFiles)
	}
	if _, err := os.Stat(filepath.Join(target, "output", "tts-cache", "work-complete.mp3")); err != nil {
		t.Errorf("cache entry not copied: %v", err)
	}
}

func TestRun_WritesMCPConfig(t *testing.T) {
	target := t.TempDir()
	if _, err := Run(Options{TargetDir: target, MCPs: []string{"context7", "github"}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(target, ".mcp.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Servers map[string]json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Servers) != 2 {
		t.Errorf("servers = %d, want 2", len(doc.Servers))
	}
}

func TestRun_UnknownMCP(t *testing.T) {
	if _, err := Run(Options{TargetDir: t.TempDir(), MCPs: []string{"clippy"}}); err == nil {
		t.Error("unknown MCP id should fail")
	}
}
