package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

type logConfig struct {
	Debug   bool   `env:"HERALD_DEBUG"`
	LogFile string `env:"HERALD_LOGFILE"`
}

// setupLog configures the diagnostic logger. With HERALD_DEBUG set,
// logs go to a file so hook invocations (whose stdout/stderr belong to
// the host protocol) stay inspectable.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[logConfig]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)

	path := cfg.LogFile
	if path == "" {
		scope := gap.NewScope(gap.User, "herald")
		dir, err := scope.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not resolve log location: %w", err)
		}
		path = filepath.Join(dir, "herald.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}
