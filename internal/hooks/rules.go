package hooks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// fileTools are the tool names that operate on a single target path.
var fileTools = map[string]bool{
	"Read":         true,
	"Edit":         true,
	"Write":        true,
	"MultiEdit":    true,
	"NotebookEdit": true,
	"NotebookRead": true,
}

// dangerousRmTargets are removal targets that wipe a filesystem root or
// the user's home.
var dangerousRmTargets = map[string]bool{
	"/":       true,
	"/*":      true,
	"~":       true,
	"~/":      true,
	"~/*":     true,
	"$HOME":   true,
	"$HOME/":  true,
	"$HOME/*": true,
	"..":      true,
	"../":     true,
	"*":       true,
}

// dangerousFragments are command substrings blocked regardless of
// surrounding context.
var dangerousFragments = []struct {
	pattern string
	reason  string
}{
	{"mkfs", "filesystem format command"},
	{":(){", "fork bomb"},
	{"> /dev/sd", "raw write to block device"},
	{"of=/dev/sd", "raw write to block device"},
	{"of=/dev/nvme", "raw write to block device"},
}

// envFileRe matches .env and its variants (.env.local, .env.production)
// wherever they appear in a command line.
var envFileRe = regexp.MustCompile(`\.env(\.[\w-]+)*`)

// checkPreToolUse is the gate run before every tool invocation.
func checkPreToolUse(ev *Event) Outcome {
	switch {
	case ev.ToolName == "Bash":
		cmd := ev.Command()
		if reason := dangerousCommand(cmd); reason != "" {
			return block(fmt.Sprintf("dangerous command blocked: %s", reason))
		}
		if accessesEnvFile(cmd) {
			return block(".env files contain secrets and must not be read or modified; use .env.sample for templates")
		}
	case fileTools[ev.ToolName]:
		if isEnvFilePath(ev.TargetPath()) {
			return block(".env files contain secrets and must not be read or modified; use .env.sample for templates")
		}
	}
	return allow()
}

// dangerousCommand returns a non-empty reason when cmd matches a
// destructive pattern.
func dangerousCommand(cmd string) string {
	if cmd == "" {
		return ""
	}

	lower := strings.ToLower(cmd)
	for _, f := range dangerousFragments {
		if strings.Contains(lower, f.pattern) {
			return f.reason
		}
	}

	if target := recursiveForceRemoval(cmd); target != "" {
		return fmt.Sprintf("recursive force removal of %q", target)
	}
	return ""
}

// recursiveForceRemoval detects rm invocations that combine recursive
// and force flags against a root, home, or wildcard target. Commands
// chained with ; && || are checked segment by segment.
func recursiveForceRemoval(cmd string) string {
	for _, segment := range splitSegments(cmd) {
		fields := strings.Fields(segment)
		// Privilege wrappers do not change what the command removes.
		for len(fields) > 0 && (fields[0] == "sudo" || fields[0] == "doas") {
			fields = fields[1:]
		}
		if len(fields) == 0 || filepath.Base(fields[0]) != "rm" {
			continue
		}

		var recursive, force bool
		var targets []string
		for _, arg := range fields[1:] {
			switch {
			case arg == "--recursive":
				recursive = true
			case arg == "--force":
				force = true
			case strings.HasPrefix(arg, "-") && len(arg) > 1 && arg[1] != '-':
				if strings.ContainsAny(arg, "rR") {
					recursive = true
				}
				if strings.Contains(arg, "f") {
					force = true
				}
			default:
				targets = append(targets, arg)
			}
		}

		if !recursive || !force {
			continue
		}
		for _, target := range targets {
			clean := strings.Trim(target, `"'`)
			if dangerousRmTargets[clean] {
				return clean
			}
		}
	}
	return ""
}

// splitSegments breaks a shell command on ; && || and | so each simple
// command is inspected on its own.
func splitSegments(cmd string) []string {
	return strings.FieldsFunc(cmd, func(r rune) bool {
		return r == ';' || r == '&' || r == '|' || r == '\n'
	})
}

// accessesEnvFile reports whether a command touches a real .env file.
// The committed templates .env.sample and .env.example stay allowed.
func accessesEnvFile(cmd string) bool {
	for _, idx := range envFileRe.FindAllStringIndex(cmd, -1) {
		// Reject partial matches like ".environments".
		if idx[1] < len(cmd) && isWordByte(cmd[idx[1]]) {
			continue
		}
		if !isEnvTemplate(cmd[idx[0]:idx[1]]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// isEnvFilePath reports whether path names a real .env file.
func isEnvFilePath(path string) bool {
	base := filepath.Base(path)
	if base != ".env" && !strings.HasPrefix(base, ".env.") {
		return false
	}
	return !isEnvTemplate(base)
}

func isEnvTemplate(name string) bool {
	return name == ".env.sample" || name == ".env.example"
}
