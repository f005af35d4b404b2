// Package scaffold creates a ready-to-use hook template in a target
// project: settings wiring, agent prompt stubs, environment templates,
// and the pre-generated phrase cache.
package scaffold

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/herald-sh/herald/internal/hooks"
	"github.com/herald-sh/herald/internal/mcp"
)

// Options selects what to scaffold.
type Options struct {
	// TargetDir is the project root to populate.
	TargetDir string

	// Engineer, when set, lands in .env.sample as the spoken-name default.
	Engineer string

	// MCPs are catalog IDs to enable in .mcp.json.
	MCPs []string

	// CacheDir, when set and present, is copied into the project's
	// phrase cache so standard announcements need no synthesis.
	CacheDir string

	// Force overwrites files that already exist.
	Force bool
}

// Result summarizes what Run created.
type Result struct {
	Created     []string
	Skipped     []string
	CachedFiles int
}

// notifyKinds are the hooks installed with spoken feedback enabled.
var notifyKinds = map[hooks.Kind]bool{
	hooks.Stop:         true,
	hooks.SubagentStop: true,
	hooks.Notification: true,
}

// Run populates the target directory. Existing files are left alone
// unless Force is set.
func Run(opts Options) (Result, error) {
	if opts.TargetDir == "" {
		return Result{}, fmt.Errorf("no target directory given")
	}

	var res Result
	for _, dir := range []string{
		opts.TargetDir,
		filepath.Join(opts.TargetDir, "logs"),
		filepath.Join(opts.TargetDir, ".claude"),
		filepath.Join(opts.TargetDir, ".claude", "agents"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	files := []struct {
		path    string
		content func() ([]byte, error)
	}{
		{filepath.Join(".claude", "settings.json"), settingsJSON},
		{".env.sample", func() ([]byte, error) { return envSample(opts.Engineer), nil }},
		{"README.md", func() ([]byte, error) { return []byte(readme), nil }},
		{filepath.Join(".claude", "agents", "code-reviewer.md"), func() ([]byte, error) { return []byte(agentReviewer), nil }},
		{filepath.Join(".claude", "agents", "work-summarizer.md"), func() ([]byte, error) { return []byte(agentSummarizer), nil }},
	}

	for _, f := range files {
		dst := filepath.Join(opts.TargetDir, f.path)
		if !opts.Force {
			if _, err := os.Stat(dst); err == nil {
				res.Skipped = append(res.Skipped, f.path)
				continue
			}
		}
		content, err := f.content()
		if err != nil {
			return res, err
		}
		if err := os.WriteFile(dst, content, 0o644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		res.Created = append(res.Created, f.path)
	}

	if len(opts.MCPs) > 0 {
		if err := writeMCPConfig(opts.TargetDir, opts.MCPs); err != nil {
			return res, err
		}
		res.Created = append(res.Created, mcp.ConfigFile)
	}

	n, err := copyCache(opts.CacheDir, filepath.Join(opts.TargetDir, "output", "tts-cache"))
	if err != nil {
		// A missing cache is normal on a fresh install.
		log.Warn("Phrase cache not copied", "error", err)
	}
	res.CachedFiles = n

	return res, nil
}

// settingsJSON renders the host's hook wiring: every lifecycle event
// invokes herald with the matching kind, notify-capable kinds with
// spoken feedback on.
func settingsJSON() ([]byte, error) {
	type hookCmd struct {
		Type    string `json:"type"`
		Command string `json:"command"`
	}
	type hookGroup struct {
		Matcher string    `json:"matcher,omitempty"`
		Hooks   []hookCmd `json:"hooks"`
	}

	wiring := make(map[string][]hookGroup, len(hooks.Kinds()))
	for _, kind := range hooks.Kinds() {
		cmd := fmt.Sprintf("herald hook %s", kind.LogName())
		if notifyKinds[kind] {
			cmd += " --notify"
		}
		wiring[string(kind)] = []hookGroup{{
			Hooks: []hookCmd{{Type: "command", Command: cmd}},
		}}
	}

	doc := map[string]any{"hooks": wiring}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return append(data, '\n'), nil
}

func envSample(engineer string) []byte {
	var b strings.Builder
	b.WriteString("# Copy to .env and fill in your keys. Providers without a key are skipped.\n")
	b.WriteString("ELEVENLABS_API_KEY=\n")
	b.WriteString("OPENAI_API_KEY=\n")
	b.WriteString(fmt.Sprintf("ENGINEER_NAME=%s\n", engineer))
	return []byte(b.String())
}

func writeMCPConfig(targetDir string, ids []string) error {
	path := filepath.Join(targetDir, mcp.ConfigFile)
	cfg, err := mcp.Load(path)
	if err != nil {
		return err
	}
	for _, id := range ids {
		entry, err := mcp.Find(id)
		if err != nil {
			return err
		}
		cfg.Add(entry)
	}
	return cfg.Save(path)
}

// copyCache copies the pre-generated audio files. Only real cache
// entries (mp3/wav) travel.
func copyCache(srcDir, dstDir string) (int, error) {
	if srcDir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return 0, err
	}

	copied := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		if err := copyFile(filepath.Join(srcDir, e.Name()), filepath.Join(dstDir, e.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

const readme = `# Project hooks

This project uses herald for AI-assistant lifecycle hooks and spoken
status notifications.

Setup:

1. cp .env.sample .env
2. Edit .env with your API keys (optional; espeak works offline)
3. herald cache warm

Hook wiring lives in .claude/settings.json. Event audit logs land in
logs/ as newline-delimited JSON, one file per event kind.
`

const agentReviewer = `---
name: code-reviewer
description: Reviews a diff for correctness, style, and missing tests.
---

You are a meticulous code reviewer. Given a diff, report concrete
problems ordered by severity, each with file, line, and a suggested
fix. Do not restate the diff.
`

const agentSummarizer = `---
name: work-summarizer
description: Summarizes completed work in two sentences for a spoken update.
---

Summarize the work that was just completed in at most two short
sentences, suitable for reading aloud. Lead with the outcome.
`
