package mcp

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// minNodeMajor is the oldest Node.js major version the npx-based
// servers support.
const minNodeMajor = 18

// RuntimeCheck probes whether the launcher a catalog entry needs is
// actually installed. An enabled server whose launcher is missing will
// fail at host startup, so list/add surface this early.
type RuntimeCheck struct {
	// lookPath and nodeVersion are swappable for tests.
	lookPath    func(string) (string, error)
	nodeVersion func() (string, error)
}

// NewRuntimeCheck creates a checker against the real system.
func NewRuntimeCheck() *RuntimeCheck {
	return &RuntimeCheck{
		lookPath: exec.LookPath,
		nodeVersion: func() (string, error) {
			out, err := exec.Command("node", "--version").Output()
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(out)), nil
		},
	}
}

// Check reports why entry cannot launch on this system, or nil when its
// runtime is ready.
func (r *RuntimeCheck) Check(entry CatalogEntry) error {
	if _, err := r.lookPath(entry.Command); err != nil {
		return fmt.Errorf("%s not found in PATH", entry.Command)
	}
	if entry.Command != "npx" {
		return nil
	}

	version, err := r.nodeVersion()
	if err != nil {
		return fmt.Errorf("node not found in PATH (required by npx servers)")
	}
	major, err := nodeMajor(version)
	if err != nil {
		return fmt.Errorf("could not parse node version %q", version)
	}
	if major < minNodeMajor {
		return fmt.Errorf("node %s is too old, v%d+ required", version, minNodeMajor)
	}
	return nil
}

// nodeMajor parses the major number out of a "v18.17.0"-style version.
func nodeMajor(version string) (int, error) {
	v := strings.TrimPrefix(version, "v")
	head, _, _ := strings.Cut(v, ".")
	return strconv.Atoi(head)
}
